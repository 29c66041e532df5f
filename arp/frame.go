package arp

import (
	"encoding/binary"
	"fmt"

	"github.com/jedel1043/oxycap/ethernet"
	"github.com/jedel1043/oxycap/macaddr"
	"github.com/jedel1043/oxycap/valid"
)

// NewFrame returns a Frame over buf. An error is returned if the buffer is
// too short to hold the fixed 8-byte header; callers should still call
// [Frame.ValidateSize] before reading Sender/Target to avoid panics, since
// the variable-length address fields aren't checked until then.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShortARP
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an ARP packet (RFC 826): fixed 8-byte
// header followed by four variable-length address fields whose widths are
// declared by the header's HLEN/PLEN bytes, not assumed from the protocol.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (afrm Frame) RawData() []byte { return afrm.buf }

// Hardware returns the hardware type (HTYPE) and address length (HLEN).
func (afrm Frame) Hardware() (typ uint16, length uint8) {
	return binary.BigEndian.Uint16(afrm.buf[0:2]), afrm.hwlen()
}

func (afrm Frame) hwlen() uint8 { return afrm.buf[4] }

// Protocol returns the protocol type (PTYPE) and address length (PLEN).
func (afrm Frame) Protocol() (typ ethernet.Type, length uint8) {
	return ethernet.Type(binary.BigEndian.Uint16(afrm.buf[2:4])), afrm.protolen()
}

func (afrm Frame) protolen() uint8 { return afrm.buf[5] }

// Operation returns the ARP opcode. See [Operation].
func (afrm Frame) Operation() Operation { return Operation(binary.BigEndian.Uint16(afrm.buf[6:8])) }

// Sender returns the hardware and protocol address sub-slices of the
// packet's sender, each hlen/plen bytes wide as declared in the header.
func (afrm Frame) Sender() (hardwareAddr, proto []byte) {
	_, hl := afrm.Hardware()
	_, pl := afrm.Protocol()
	hlen, plen := int(hl), int(pl)
	return afrm.buf[8 : 8+hlen], afrm.buf[8+hlen : 8+hlen+plen]
}

// Target returns the hardware and protocol address sub-slices of the
// packet's target, each hlen/plen bytes wide as declared in the header.
func (afrm Frame) Target() (hardwareAddr, proto []byte) {
	_, hl := afrm.Hardware()
	_, pl := afrm.Protocol()
	hlen, plen := int(hl), int(pl)
	toff := 8 + hlen + plen
	return afrm.buf[toff : toff+hlen], afrm.buf[toff+hlen : toff+hlen+plen]
}

// Sender4 returns sender addresses for the common Ethernet/IPv4 case
// (HLEN=6, PLEN=4) as fixed-size zero-copy views.
func (afrm Frame) Sender4() (hardwareAddr *macaddr.Addr, proto *[4]byte) {
	return macaddr.From6(afrm.buf[8:14]), (*[4]byte)(afrm.buf[14:18])
}

// Target4 returns target addresses for the common Ethernet/IPv4 case.
func (afrm Frame) Target4() (hardwareAddr *macaddr.Addr, proto *[4]byte) {
	return macaddr.From6(afrm.buf[18:24]), (*[4]byte)(afrm.buf[24:28])
}

// Sender16 returns sender addresses for the Ethernet/IPv6 case (HLEN=6, PLEN=16).
func (afrm Frame) Sender16() (hardwareAddr *macaddr.Addr, proto *[16]byte) {
	return macaddr.From6(afrm.buf[8:14]), (*[16]byte)(afrm.buf[14:30])
}

// Target16 returns target addresses for the Ethernet/IPv6 case.
func (afrm Frame) Target16() (hardwareAddr *macaddr.Addr, proto *[16]byte) {
	return macaddr.From6(afrm.buf[30:36]), (*[16]byte)(afrm.buf[36:52])
}

// ValidateSize checks that the buffer is long enough to hold all four
// address fields at the widths declared by HLEN/PLEN.
func (afrm Frame) ValidateSize(v *valid.Validator) {
	_, hlen := afrm.Hardware()
	_, plen := afrm.Protocol()
	minLen := 8 + 2*(int(hlen)+int(plen))
	if len(afrm.buf) < minLen {
		v.AddError(errShortARP)
	}
}

// String renders a one-line summary: operation, hardware type, and both
// address pairs in their natural string form.
func (afrm Frame) String() string {
	htyp, _ := afrm.Hardware()
	ptyp, _ := afrm.Protocol()
	sndhw, sndpt := afrm.Sender()
	tgthw, tgtpt := afrm.Target()
	return fmt.Sprintf("ARP %s HTYPE=%d PTYPE=%s SENDER=(%x,%x) TARGET=(%x,%x)",
		afrm.Operation(), htyp, ptyp, sndhw, sndpt, tgthw, tgtpt)
}
