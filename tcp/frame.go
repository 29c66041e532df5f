package tcp

import (
	"encoding/binary"
	"fmt"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/jedel1043/oxycap/valid"
)

const tcpProtoConst uint16 = 0x0006

// PseudoHeaderSumIPv4 folds an IPv4 parent's address partial sum (see
// ipv4.Frame.AddressChecksumPartial), the TCP protocol constant, and the
// transport payload length into the pseudo-header partial sum a [Frame]
// needs at construction time (§4.9).
func PseudoHeaderSumIPv4(addressPartial uint16, transportLength uint16) uint16 {
	return checksum.Combine(addressPartial, tcpProtoConst, transportLength)
}

// PseudoHeaderSumIPv6 is the IPv6 analogue of [PseudoHeaderSumIPv4]: the
// transport length is 32 bits wide and folds in as two 16-bit words so
// segments larger than 0xFFFF bytes still sum correctly.
func PseudoHeaderSumIPv6(addressPartial uint16, transportLength uint32) uint16 {
	return checksum.Combine(addressPartial, tcpProtoConst, uint16(transportLength>>16), uint16(transportLength))
}

// NewFrame returns a Frame over buf. pseudoHeaderSum is the partial sum
// returned by [PseudoHeaderSumIPv4] or [PseudoHeaderSumIPv6], precomputed
// by the caller from the surrounding network-layer view. An error is
// returned if buf is shorter than the fixed 20-byte header; callers
// should still call [Frame.ValidateSize] before reading Options/Payload
// to avoid panics.
func NewFrame(buf []byte, pseudoHeaderSum uint16) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShort
	}
	return Frame{buf: buf, pseudoSum: pseudoHeaderSum}, nil
}

// Frame is a zero-copy view over a TCP segment (RFC 9293): a fixed
// 20-byte header, an optional options segment sized by the data offset,
// and a payload, carrying the pseudo-header partial sum computed by its
// IPv4/IPv6 parent at construction time.
type Frame struct {
	buf       []byte
	pseudoSum uint16
}

// RawData returns the underlying slice with which the frame was created.
func (tfrm Frame) RawData() []byte { return tfrm.buf }

// SourcePort identifies the sending port.
func (tfrm Frame) SourcePort() uint16 { return binary.BigEndian.Uint16(tfrm.buf[0:2]) }

// DestinationPort identifies the receiving port.
func (tfrm Frame) DestinationPort() uint16 { return binary.BigEndian.Uint16(tfrm.buf[2:4]) }

// SeqNum is the sequence number of the first data octet of the segment
// (the ISN, plus one for the first data octet, if SYN is set).
func (tfrm Frame) SeqNum() uint32 { return binary.BigEndian.Uint32(tfrm.buf[4:8]) }

func (tfrm Frame) ackNum() uint32 { return binary.BigEndian.Uint32(tfrm.buf[8:12]) }

// AckNum returns the acknowledgment number and true only when the ACK
// flag is set; the field is not meaningful otherwise (§4.9).
func (tfrm Frame) AckNum() (uint32, bool) {
	_, flags := tfrm.OffsetAndFlags()
	if !flags.HasAny(FlagACK) {
		return 0, false
	}
	return tfrm.ackNum(), true
}

// OffsetAndFlags splits the combined offset/flags field at byte 12: the
// data offset (in 32-bit words, high nibble of byte 12) and the 9-bit
// flags field (bit 0 of byte 12, all of byte 13).
func (tfrm Frame) OffsetAndFlags() (dataOffset uint8, flags Flags) {
	v := binary.BigEndian.Uint16(tfrm.buf[12:14])
	dataOffset = uint8(v >> 12)
	flags = Flags(v).Mask()
	return dataOffset, flags
}

// HeaderLength uses the data offset field to compute the total header
// length in bytes, options included. Performs no validation.
func (tfrm Frame) HeaderLength() int {
	offset, _ := tfrm.OffsetAndFlags()
	return 4 * int(offset)
}

// WindowSize is the number of bytes the sender is willing to receive
// beyond the acknowledged sequence number.
func (tfrm Frame) WindowSize() uint16 { return binary.BigEndian.Uint16(tfrm.buf[14:16]) }

// Checksum returns the checksum field as read off the wire.
func (tfrm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(tfrm.buf[16:18]) }

func (tfrm Frame) urgentPtr() uint16 { return binary.BigEndian.Uint16(tfrm.buf[18:20]) }

// UrgentPtr returns the urgent pointer and true only when the URG flag
// is set; the field is not meaningful otherwise (§4.9).
func (tfrm Frame) UrgentPtr() (uint16, bool) {
	_, flags := tfrm.OffsetAndFlags()
	if !flags.HasAny(FlagURG) {
		return 0, false
	}
	return tfrm.urgentPtr(), true
}

// Options returns the TCP option byte range, zero length if the data
// offset equals the minimum of 5. Be sure to call [Frame.ValidateSize]
// beforehand to avoid panics.
func (tfrm Frame) Options() []byte {
	return tfrm.buf[sizeHeader:tfrm.HeaderLength()]
}

// Payload returns the payload section following the header and options.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panics.
func (tfrm Frame) Payload() []byte {
	return tfrm.buf[tfrm.HeaderLength():]
}

// HasIntegrity reports whether the segment's checksum is self-consistent
// against its precomputed pseudo-header partial sum: the one's-complement
// sum of pseudo-header, header (options included, by the composability
// law an even split at byte 20 doesn't change the result), and payload,
// checksum field included, must fold to zero (§4.9).
func (tfrm Frame) HasIntegrity() bool {
	hdr := checksum.Sum16U8(tfrm.buf[:tfrm.HeaderLength()])
	pay := checksum.Sum16U8(tfrm.Payload())
	return checksum.CombineComplement(tfrm.pseudoSum, hdr, pay) == 0
}

func (tfrm Frame) String() string {
	_, flags := tfrm.OffsetAndFlags()
	return fmt.Sprintf("TCP :%d -> :%d SEQ=%d %s", tfrm.SourcePort(), tfrm.DestinationPort(), tfrm.SeqNum(), flags.String())
}

//
// Validation API.
//

// ValidateSize checks the data offset field against the actual buffer
// length.
func (tfrm Frame) ValidateSize(v *valid.Validator) {
	off := tfrm.HeaderLength()
	if off < sizeHeader {
		v.AddError(errBadOffset)
	}
	if off > len(tfrm.buf) {
		v.AddError(errShort)
	}
}
