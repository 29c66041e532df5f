package udp

import (
	"encoding/binary"
	"fmt"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/jedel1043/oxycap/valid"
)

// PseudoHeaderSumIPv4 is the UDP analogue of tcp.PseudoHeaderSumIPv4: same
// shape, differing only in the protocol constant (§4.10).
func PseudoHeaderSumIPv4(addressPartial uint16, transportLength uint16) uint16 {
	return checksum.Combine(addressPartial, udpProtoConst, transportLength)
}

// PseudoHeaderSumIPv6 is the UDP analogue of tcp.PseudoHeaderSumIPv6.
func PseudoHeaderSumIPv6(addressPartial uint16, transportLength uint32) uint16 {
	return checksum.Combine(addressPartial, udpProtoConst, uint16(transportLength>>16), uint16(transportLength))
}

// NewFrame returns a Frame over buf. pseudoHeaderSum is the partial sum
// returned by [PseudoHeaderSumIPv4] or [PseudoHeaderSumIPv6], precomputed
// by the caller from the surrounding network-layer view. An error is
// returned if buf is shorter than the fixed 8-byte header; callers should
// still call [Frame.ValidateSize] before reading Payload to avoid panics.
func NewFrame(buf []byte, pseudoHeaderSum uint16) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShort
	}
	return Frame{buf: buf, pseudoSum: pseudoHeaderSum}, nil
}

// Frame is a zero-copy view over a UDP datagram (RFC 768): a fixed
// 8-byte header followed by the payload, carrying the pseudo-header
// partial sum computed by its IPv4/IPv6 parent at construction time.
type Frame struct {
	buf       []byte
	pseudoSum uint16
}

// RawData returns the underlying slice with which the frame was created.
func (ufrm Frame) RawData() []byte { return ufrm.buf }

// SourcePort identifies the sending port.
func (ufrm Frame) SourcePort() uint16 { return binary.BigEndian.Uint16(ufrm.buf[0:2]) }

// DestinationPort identifies the receiving port.
func (ufrm Frame) DestinationPort() uint16 { return binary.BigEndian.Uint16(ufrm.buf[2:4]) }

// Length is the size in bytes of UDP header and payload combined; the
// minimum value is 8 (header only).
func (ufrm Frame) Length() uint16 { return binary.BigEndian.Uint16(ufrm.buf[4:6]) }

// Checksum returns the checksum field as read off the wire.
func (ufrm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(ufrm.buf[6:8]) }

// Payload returns the datagram's data, following the fixed header. Be
// sure to call [Frame.ValidateSize] beforehand to avoid panics.
func (ufrm Frame) Payload() []byte {
	return ufrm.buf[sizeHeader:ufrm.Length()]
}

// HasIntegrity reports whether the datagram's checksum is self-consistent
// against its precomputed pseudo-header partial sum: the one's-complement
// sum of pseudo-header, header, and payload, checksum field included,
// must fold to zero (§4.10).
func (ufrm Frame) HasIntegrity() bool {
	hdr := checksum.Sum16U8(ufrm.buf[:sizeHeader])
	pay := checksum.Sum16U8(ufrm.Payload())
	return checksum.CombineComplement(ufrm.pseudoSum, hdr, pay) == 0
}

func (ufrm Frame) String() string {
	return fmt.Sprintf("UDP :%d -> :%d LEN=%d", ufrm.SourcePort(), ufrm.DestinationPort(), ufrm.Length())
}

//
// Validation API.
//

// ValidateSize checks the Length field against the actual buffer length.
func (ufrm Frame) ValidateSize(v *valid.Validator) {
	ul := ufrm.Length()
	if ul < sizeHeader {
		v.AddError(errBadLen)
	}
	if int(ul) > len(ufrm.buf) {
		v.AddError(errShort)
	}
}
