package main

import (
	"fmt"
	"net"

	"github.com/jedel1043/oxycap/arp"
	"github.com/jedel1043/oxycap/display"
	"github.com/jedel1043/oxycap/ethernet"
	"github.com/jedel1043/oxycap/icmp"
	"github.com/jedel1043/oxycap/igmp"
	"github.com/jedel1043/oxycap/ipv4"
	"github.com/jedel1043/oxycap/ipv6"
	"github.com/jedel1043/oxycap/llc"
	"github.com/jedel1043/oxycap/tcp"
	"github.com/jedel1043/oxycap/udp"
	"github.com/jedel1043/oxycap/valid"
)

// linkTypeEthernet is the only capture link type the decoder recognizes,
// matching pcap's DLT_EN10MB / LINKTYPE_ETHERNET value.
const linkTypeEthernet = 1

var errUnknownLinkType = fmt.Errorf("oxycap: unrecognized capture link type")

// decodeFrame walks one captured frame's protocol chain, emitting one
// display.Row per layer it manages to decode. A failed checksum does not
// stop the walk: it shows up in that layer's integrity field. A layer
// whose constructor, size or version validation fails gets its errors in
// Row.Errors and ends the walk there; the rows built so far are returned
// with a nil error.
func decodeFrame(linkType uint32, raw []byte) ([]display.Row, error) {
	if linkType != linkTypeEthernet {
		return nil, errUnknownLinkType
	}
	efrm, err := ethernet.NewFrame(raw)
	if err != nil {
		return nil, err
	}
	var v valid.Validator
	efrm.ValidateSize(&v)
	rows := []display.Row{{
		Protocol: "Ethernet",
		ByteLen:  len(raw),
		Fields: []display.Field{
			{Name: "src", Class: display.FieldClassAddress, Value: efrm.SourceHardwareAddr().String()},
			{Name: "dst", Class: display.FieldClassAddress, Value: efrm.DestinationHardwareAddr().String()},
			{Name: "ethertype", Class: display.FieldClassGeneric, Value: efrm.EtherTypeOrLength().String()},
		},
		Errors: validatorErrors(&v),
	}}
	if v.HasError() {
		return rows, nil
	}

	nh := efrm.Dispatch()
	switch nh.Kind {
	case ethernet.KindIPv4:
		rows = decodeIPv4(rows, nh.Payload)
	case ethernet.KindIPv6:
		rows = decodeIPv6(rows, nh.Payload)
	case ethernet.KindARP:
		rows = decodeARP(rows, nh.Payload)
	case ethernet.KindLLC, ethernet.KindSNAP, ethernet.KindNovellRaw:
		rows = decodeLLC(rows, nh.Payload)
	}
	return rows, nil
}

// validatorErrors flattens a Validator's accumulated errors into a
// slice for a display.Row, joining more than one into a single entry.
func validatorErrors(v *valid.Validator) []error {
	if err := v.Err(); err != nil {
		return []error{err}
	}
	return nil
}

// addrString renders a protocol address of declared length 4 or 16 as
// dotted/colon notation, falling back to hex for any other ARP PLEN.
func addrString(proto []byte) string {
	switch len(proto) {
	case 4, 16:
		return net.IP(proto).String()
	default:
		return fmt.Sprintf("% x", proto)
	}
}

func decodeIPv4(rows []display.Row, buf []byte) []display.Row {
	ifrm, err := ipv4.NewFrame(buf)
	if err != nil {
		return append(rows, display.Row{Protocol: "IPv4", Errors: []error{err}})
	}
	var v valid.Validator
	ifrm.ValidateExceptCRC(&v)
	src, dst := net.IP(ifrm.SourceAddr()[:]), net.IP(ifrm.DestinationAddr()[:])
	row := display.Row{
		Protocol: "IPv4",
		ByteLen:  int(ifrm.TotalLength()),
		Fields: []display.Field{
			{Name: "src", Class: display.FieldClassAddress, Value: src.String()},
			{Name: "dst", Class: display.FieldClassAddress, Value: dst.String()},
			{Name: "proto", Class: display.FieldClassGeneric, Value: ifrm.Protocol().String()},
			{Name: "ttl", Class: display.FieldClassGeneric, Value: ifrm.TTL()},
			{Name: "checksum", Class: display.FieldClassChecksum, Value: ifrm.HeaderChecksum()},
			{Name: "integrity", Class: display.FieldClassGeneric, Value: ifrm.HasIntegrity()},
		},
		Errors: validatorErrors(&v),
	}
	rows = append(rows, row)
	if v.HasError() {
		return rows
	}

	nh := ifrm.Dispatch()
	switch nh.Kind {
	case ipv4.KindTCP:
		pseudoSum := tcp.PseudoHeaderSumIPv4(ifrm.AddressChecksumPartial(), uint16(len(nh.Payload)))
		rows = decodeTCP(rows, nh.Payload, pseudoSum)
	case ipv4.KindUDP:
		pseudoSum := udp.PseudoHeaderSumIPv4(ifrm.AddressChecksumPartial(), uint16(len(nh.Payload)))
		rows = decodeUDP(rows, nh.Payload, pseudoSum)
	case ipv4.KindICMP:
		rows = decodeICMP(rows, nh.Payload)
	case ipv4.KindIGMP:
		rows = decodeIGMP(rows, nh.Payload)
	}
	return rows
}

func decodeIPv6(rows []display.Row, buf []byte) []display.Row {
	i6frm, err := ipv6.NewFrame(buf)
	if err != nil {
		return append(rows, display.Row{Protocol: "IPv6", Errors: []error{err}})
	}
	var v valid.Validator
	i6frm.ValidateSize(&v)
	i6frm.ValidateVersion(&v)
	src, dst := net.IP(i6frm.SourceAddr()[:]), net.IP(i6frm.DestinationAddr()[:])
	row := display.Row{
		Protocol: "IPv6",
		ByteLen:  int(i6frm.PayloadLength()) + 40,
		Fields: []display.Field{
			{Name: "src", Class: display.FieldClassAddress, Value: src.String()},
			{Name: "dst", Class: display.FieldClassAddress, Value: dst.String()},
			{Name: "next_header", Class: display.FieldClassGeneric, Value: i6frm.NextHeaderValue().String()},
			{Name: "hop_limit", Class: display.FieldClassGeneric, Value: i6frm.HopLimit()},
		},
		Errors: validatorErrors(&v),
	}
	rows = append(rows, row)
	if v.HasError() {
		return rows
	}

	nh := i6frm.Dispatch()
	switch nh.Kind {
	case ipv6.KindTCP:
		pseudoSum := tcp.PseudoHeaderSumIPv6(i6frm.AddressChecksumPartial(), uint32(len(nh.Payload)))
		rows = decodeTCP(rows, nh.Payload, pseudoSum)
	case ipv6.KindUDP:
		pseudoSum := udp.PseudoHeaderSumIPv6(i6frm.AddressChecksumPartial(), uint32(len(nh.Payload)))
		rows = decodeUDP(rows, nh.Payload, pseudoSum)
	}
	return rows
}

func decodeARP(rows []display.Row, buf []byte) []display.Row {
	afrm, err := arp.NewFrame(buf)
	if err != nil {
		return append(rows, display.Row{Protocol: "ARP", Errors: []error{err}})
	}
	var v valid.Validator
	afrm.ValidateSize(&v)
	row := display.Row{
		Protocol: "ARP",
		ByteLen:  len(buf),
		Fields: []display.Field{
			{Name: "operation", Class: display.FieldClassOperation, Value: afrm.Operation().String()},
		},
		Errors: validatorErrors(&v),
	}
	if !v.HasError() {
		sha, spa := afrm.Sender()
		tha, tpa := afrm.Target()
		row.Fields = append(row.Fields,
			display.Field{Name: "sender_ha", Class: display.FieldClassAddress, Value: fmt.Sprintf("% x", sha)},
			display.Field{Name: "sender_pa", Class: display.FieldClassAddress, Value: addrString(spa)},
			display.Field{Name: "target_ha", Class: display.FieldClassAddress, Value: fmt.Sprintf("% x", tha)},
			display.Field{Name: "target_pa", Class: display.FieldClassAddress, Value: addrString(tpa)},
		)
	}
	return append(rows, row)
}

func decodeLLC(rows []display.Row, buf []byte) []display.Row {
	frm, err := llc.NewFrame(buf)
	if err != nil {
		return append(rows, display.Row{Protocol: "LLC", Errors: []error{err}})
	}
	fields := []display.Field{
		{Name: "dsap", Class: display.FieldClassGeneric, Value: frm.DSAP().String()},
		{Name: "ssap", Class: display.FieldClassGeneric, Value: frm.SSAP().String()},
		{Name: "command", Class: display.FieldClassGeneric, Value: frm.IsCommand()},
	}
	var errs []error
	if ctrl, err := frm.Control(); err == nil {
		summary := ctrl.Kind.String()
		if ctrl.Kind == llc.KindU {
			summary = fmt.Sprintf("%s %s", summary, ctrl.UCode)
		}
		fields = append(fields, display.Field{Name: "control", Class: display.FieldClassGeneric, Value: summary})
	} else {
		errs = append(errs, err)
	}
	return append(rows, display.Row{
		Protocol: "LLC",
		ByteLen:  len(buf),
		Fields:   fields,
		Errors:   errs,
	})
}

func decodeTCP(rows []display.Row, buf []byte, pseudoSum uint16) []display.Row {
	tfrm, err := tcp.NewFrame(buf, pseudoSum)
	if err != nil {
		return append(rows, display.Row{Protocol: "TCP", Errors: []error{err}})
	}
	var v valid.Validator
	tfrm.ValidateSize(&v)
	_, flags := tfrm.OffsetAndFlags()
	return append(rows, display.Row{
		Protocol: "TCP",
		ByteLen:  len(buf),
		Fields: []display.Field{
			{Name: "src_port", Class: display.FieldClassPort, Value: tfrm.SourcePort()},
			{Name: "dst_port", Class: display.FieldClassPort, Value: tfrm.DestinationPort()},
			{Name: "seq", Class: display.FieldClassGeneric, Value: tfrm.SeqNum()},
			{Name: "flags", Class: display.FieldClassFlags, Value: uint16(flags)},
			{Name: "checksum", Class: display.FieldClassChecksum, Value: tfrm.Checksum()},
			{Name: "integrity", Class: display.FieldClassGeneric, Value: tfrm.HasIntegrity()},
		},
		Errors: validatorErrors(&v),
	})
}

func decodeUDP(rows []display.Row, buf []byte, pseudoSum uint16) []display.Row {
	ufrm, err := udp.NewFrame(buf, pseudoSum)
	if err != nil {
		return append(rows, display.Row{Protocol: "UDP", Errors: []error{err}})
	}
	var v valid.Validator
	ufrm.ValidateSize(&v)
	return append(rows, display.Row{
		Protocol: "UDP",
		ByteLen:  int(ufrm.Length()),
		Fields: []display.Field{
			{Name: "src_port", Class: display.FieldClassPort, Value: ufrm.SourcePort()},
			{Name: "dst_port", Class: display.FieldClassPort, Value: ufrm.DestinationPort()},
			{Name: "checksum", Class: display.FieldClassChecksum, Value: ufrm.Checksum()},
			{Name: "integrity", Class: display.FieldClassGeneric, Value: ufrm.HasIntegrity()},
		},
		Errors: validatorErrors(&v),
	})
}

func decodeICMP(rows []display.Row, buf []byte) []display.Row {
	frm, err := icmp.NewFrame(buf)
	if err != nil {
		return append(rows, display.Row{Protocol: "ICMPv4", Errors: []error{err}})
	}
	var v valid.Validator
	frm.ValidateSize(&v)
	return append(rows, display.Row{
		Protocol: "ICMPv4",
		ByteLen:  len(buf),
		Fields: []display.Field{
			{Name: "type", Class: display.FieldClassGeneric, Value: frm.Type().String()},
			{Name: "code", Class: display.FieldClassGeneric, Value: frm.Code()},
			{Name: "checksum", Class: display.FieldClassChecksum, Value: frm.Checksum()},
			{Name: "integrity", Class: display.FieldClassGeneric, Value: frm.HasIntegrity()},
		},
		Errors: validatorErrors(&v),
	})
}

func decodeIGMP(rows []display.Row, buf []byte) []display.Row {
	frm, err := igmp.NewFrame(buf)
	if err != nil {
		return append(rows, display.Row{Protocol: "IGMP", Errors: []error{err}})
	}
	var v valid.Validator
	frm.ValidateSize(&v)
	group := net.IP(frm.GroupAddr()[:])
	return append(rows, display.Row{
		Protocol: "IGMP",
		ByteLen:  len(buf),
		Fields: []display.Field{
			{Name: "type", Class: display.FieldClassGeneric, Value: frm.Type().String()},
			{Name: "group", Class: display.FieldClassAddress, Value: group.String()},
			{Name: "integrity", Class: display.FieldClassGeneric, Value: frm.HasIntegrity()},
		},
		Errors: validatorErrors(&v),
	})
}
