package ipv6

import (
	"encoding/binary"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/jedel1043/oxycap/ipproto"
	"github.com/jedel1043/oxycap/unknown"
	"github.com/jedel1043/oxycap/valid"
)

// NewFrame returns a Frame over buf. An error is returned if buf is
// shorter than the fixed 40-byte header; callers should still call
// [Frame.ValidateSize] before reading Payload to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShortBuf
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an IPv6 datagram (RFC 8200): a fixed
// 40-byte header followed by the payload. Extension-header walking is out
// of scope — NextHeader is surfaced as a raw 8-bit value/dispatch variant,
// never chased automatically.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (i6frm Frame) RawData() []byte { return i6frm.buf }

// VersionTrafficAndFlow splits the first 32 bits of the header into the
// version nibble (expected 6), the 8-bit traffic class, and the 20-bit
// flow label.
func (i6frm Frame) VersionTrafficAndFlow() (version uint8, tc TrafficClass, flow FlowLabel) {
	v := binary.BigEndian.Uint32(i6frm.buf[0:4])
	version = uint8(v >> 28)
	tc = TrafficClass(v >> 20)
	flow = FlowLabel(v & 0x000f_ffff)
	return version, tc, flow
}

// PayloadLength is the size of the payload in bytes, extension headers
// included.
func (i6frm Frame) PayloadLength() uint16 { return binary.BigEndian.Uint16(i6frm.buf[4:6]) }

// NextHeaderValue returns the raw 8-bit Next Header field.
func (i6frm Frame) NextHeaderValue() ipproto.Proto { return ipproto.Proto(i6frm.buf[6]) }

// HopLimit is decremented by one at each forwarding node.
func (i6frm Frame) HopLimit() uint8 { return i6frm.buf[7] }

// SourceAddr returns a pointer to the 16-byte source address.
func (i6frm Frame) SourceAddr() *[16]byte { return (*[16]byte)(i6frm.buf[8:24]) }

// DestinationAddr returns a pointer to the 16-byte destination address.
func (i6frm Frame) DestinationAddr() *[16]byte { return (*[16]byte)(i6frm.buf[24:40]) }

// Payload returns the bytes following the fixed header, PayloadLength
// bytes wide. Be sure to call [Frame.ValidateSize] beforehand to avoid panics.
func (i6frm Frame) Payload() []byte {
	return i6frm.buf[sizeHeader : sizeHeader+int(i6frm.PayloadLength())]
}

// AddressChecksumPartial returns the 16-bit one's-complement sum of the
// 32-byte source+destination address block, the fixed part of the
// TCP/UDP pseudo-header over IPv6 (see [checksum.Combine]).
func (i6frm Frame) AddressChecksumPartial() uint16 {
	return checksum.Sum16U8(i6frm.buf[8:40])
}

// NextHeader is the tagged variant produced by [Frame.Dispatch].
type NextHeader struct {
	Kind     Kind
	RawProto ipproto.Proto
	Payload  []byte
}

// Kind enumerates IPv6's next-header dispatch outcomes. The core handles
// TCP and UDP only (§4.6); every other next-header value, including the
// IPv6 extension headers, surfaces as KindOther with the raw value intact.
type Kind uint8

const (
	KindTCP Kind = iota
	KindUDP
	KindOther
)

func (k Kind) String() string {
	switch k {
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

// Dispatch classifies the Next Header field: 0x06 TCP, 0x11 UDP,
// anything else Other (extension headers are never chased).
func (i6frm Frame) Dispatch() NextHeader {
	proto := i6frm.NextHeaderValue()
	payload := i6frm.Payload()
	switch proto {
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

// ValidateSize checks PayloadLength against the actual buffer length.
func (i6frm Frame) ValidateSize(v *valid.Validator) {
	if int(i6frm.PayloadLength())+sizeHeader > len(i6frm.buf) {
		v.AddError(errShortFrame)
	}
}

// ValidateVersion checks the version nibble equals 6.
func (i6frm Frame) ValidateVersion(v *valid.Validator) {
	version, _, _ := i6frm.VersionTrafficAndFlow()
	if version != 6 {
		v.AddError(errBadVersion)
	}
}
