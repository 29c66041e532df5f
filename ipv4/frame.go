package ipv4

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/jedel1043/oxycap/ipproto"
	"github.com/jedel1043/oxycap/unknown"
	"github.com/jedel1043/oxycap/valid"
)

// NewFrame returns a Frame over buf. An error is returned if buf is shorter
// than the fixed 20-byte header; callers should still call
// [Frame.ValidateSize] before reading Options/Payload to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShort
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an IPv4 datagram (RFC 791): a fixed
// 20-byte header, an optional options segment sized by IHL, and a payload.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (ifrm Frame) RawData() []byte { return ifrm.buf }

func (ifrm Frame) ihl() uint8     { return ifrm.buf[0] & 0xf }
func (ifrm Frame) version() uint8 { return ifrm.buf[0] >> 4 }

// HeaderLength returns the header length in bytes, options included.
func (ifrm Frame) HeaderLength() int { return int(ifrm.ihl()) * 4 }

// VersionAndIHL returns the version nibble (expected 4) and the raw
// Internet Header Length field, in 32-bit words.
func (ifrm Frame) VersionAndIHL() (version, ihl uint8) {
	v := ifrm.buf[0]
	return v >> 4, v & 0xf
}

// DSCPAndECN splits the header's second byte into its two sub-fields.
func (ifrm Frame) DSCPAndECN() (DSCP, ECN) {
	b := ifrm.buf[1]
	return DSCP(b >> 2), ECN(b & 0x3)
}

// TotalLength is the entire datagram size in bytes, header included.
func (ifrm Frame) TotalLength() uint16 { return binary.BigEndian.Uint16(ifrm.buf[2:4]) }

// ID is used to group the fragments of a single datagram.
func (ifrm Frame) ID() uint16 { return binary.BigEndian.Uint16(ifrm.buf[4:6]) }

// FlagsAndFragmentOffset splits the combined 16-bit field at byte 6 into
// the 3-bit flags and 13-bit fragment offset.
func (ifrm Frame) FlagsAndFragmentOffset() (Flags, FragmentOffset) {
	v := binary.BigEndian.Uint16(ifrm.buf[6:8])
	return Flags(v >> 13), FragmentOffset(v & 0x1fff)
}

// TTL is the time-to-live hop counter.
func (ifrm Frame) TTL() uint8 { return ifrm.buf[8] }

// Protocol names the transport-layer protocol carried in the payload.
func (ifrm Frame) Protocol() ipproto.Proto { return ipproto.Proto(ifrm.buf[9]) }

// HeaderChecksum returns the header checksum field as read off the wire.
func (ifrm Frame) HeaderChecksum() uint16 { return binary.BigEndian.Uint16(ifrm.buf[10:12]) }

// SourceAddr returns a pointer to the source address bytes.
func (ifrm Frame) SourceAddr() *[4]byte { return (*[4]byte)(ifrm.buf[12:16]) }

// DestinationAddr returns a pointer to the destination address bytes.
func (ifrm Frame) DestinationAddr() *[4]byte { return (*[4]byte)(ifrm.buf[16:20]) }

// Options returns the variable-length options segment, zero length if
// IHL == 5. Be sure to call [Frame.ValidateSize] beforehand to avoid panics.
func (ifrm Frame) Options() []byte {
	return ifrm.buf[sizeHeader:ifrm.HeaderLength()]
}

// Payload returns the datagram's data, following the header and options.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panics.
func (ifrm Frame) Payload() []byte {
	return ifrm.buf[ifrm.HeaderLength():ifrm.TotalLength()]
}

// HasIntegrity reports whether the header checksum (covering header and
// options only, never the payload) is self-consistent: RFC 1071 requires
// the one's-complement sum of the whole header-plus-options segment,
// checksum field included, to fold to zero. A header whose IHL claims more
// bytes than the buffer holds has no integrity.
func (ifrm Frame) HasIntegrity() bool {
	hl := ifrm.HeaderLength()
	if hl > len(ifrm.buf) {
		return false
	}
	return checksum.Sum16U8(ifrm.buf[:hl]) == 0xffff
}

// AddressChecksumPartial returns the 16-bit one's-complement sum of the
// source and destination addresses, the fixed part of the TCP/UDP
// pseudo-header that transport views precompute at construction time (see
// [checksum.Combine]).
func (ifrm Frame) AddressChecksumPartial() uint16 {
	return checksum.Sum16U8(ifrm.buf[12:20])
}

// NextHeader is the tagged variant produced by [Frame.Dispatch].
type NextHeader struct {
	Kind     Kind
	RawProto ipproto.Proto
	Payload  []byte
}

// Kind enumerates IPv4's supported next-protocol dispatch outcomes.
type Kind uint8

const (
	KindICMP Kind = iota
	KindIGMP
	KindTCP
	KindUDP
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindICMP:
		return "ICMP"
	case KindIGMP:
		return "IGMP"
	case KindTCP:
		return "TCP"
	case KindUDP:
		return "UDP"
	default:
		return "Other"
	}
}

// Unknown returns the fallback carrier for KindOther variants.
func (nh NextHeader) Unknown() unknown.Frame {
	return unknown.Frame{TypeID: uint32(nh.RawProto), Payload: nh.Payload}
}

// Dispatch classifies the protocol field and hands the payload to the
// matching next-layer variant (§4.5): 0x01 ICMP, 0x02 IGMP, 0x06 TCP,
// 0x11 UDP, anything else Other.
func (ifrm Frame) Dispatch() NextHeader {
	proto := ifrm.Protocol()
	payload := ifrm.Payload()
	switch proto {
	case ipproto.ICMP:
		return NextHeader{Kind: KindICMP, RawProto: proto, Payload: payload}
	case ipproto.IGMP:
		return NextHeader{Kind: KindIGMP, RawProto: proto, Payload: payload}
	case ipproto.TCP:
		return NextHeader{Kind: KindTCP, RawProto: proto, Payload: payload}
	case ipproto.UDP:
		return NextHeader{Kind: KindUDP, RawProto: proto, Payload: payload}
	default:
		return NextHeader{Kind: KindOther, RawProto: proto, Payload: payload}
	}
}

//
// Validation API.
//

var (
	errBadTL      = errors.New("ipv4: bad total length")
	errShort      = errors.New("ipv4: short buffer")
	errBadIHL     = errors.New("ipv4: IHL below minimum of 5")
	errBadVersion = errors.New("ipv4: version nibble is not 4")
	errEvil       = errors.New("ipv4: evil bit set")
)

// ValidateSize checks IHL and TotalLength against the actual buffer length.
func (ifrm Frame) ValidateSize(v *valid.Validator) {
	ihl := ifrm.ihl()
	tl := ifrm.TotalLength()
	if ihl < 5 {
		v.AddError(errBadIHL)
	}
	if tl < sizeHeader || ifrm.HeaderLength() > int(tl) {
		v.AddError(errBadTL)
	}
	if int(tl) > len(ifrm.buf) {
		v.AddError(errShort)
	}
}

// ValidateExceptCRC checks structural invariants besides the header
// checksum: version nibble, size fields, and (if requested) the evil bit.
func (ifrm Frame) ValidateExceptCRC(v *valid.Validator) {
	ifrm.ValidateSize(v)
	if ifrm.version() != 4 {
		v.AddError(errBadVersion)
	}
	flags, _ := ifrm.FlagsAndFragmentOffset()
	if v.CheckEvil && flags.IsEvil() {
		v.AddError(errEvil)
	}
}

func (ifrm Frame) String() string {
	src := netip.AddrFrom4(*ifrm.SourceAddr())
	dst := netip.AddrFrom4(*ifrm.DestinationAddr())
	hl := ifrm.HeaderLength()
	tl := int(ifrm.TotalLength())
	return fmt.Sprintf("IPv4 %s SRC=%s DST=%s LEN=%d OPT=%d TTL=%d ID=%d",
		ifrm.Protocol().String(), src, dst, tl, hl-sizeHeader, ifrm.TTL(), ifrm.ID())
}
