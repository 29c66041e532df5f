package icmp

import (
	"encoding/binary"
	"errors"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/jedel1043/oxycap/valid"
)

var errShort = errors.New("icmp: buffer shorter than 8-byte header")

// NewFrame returns a Frame over buf. An error is returned if buf is
// shorter than the fixed 8-byte header.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShort
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an ICMP message (RFC 792): an 8-byte
// header (type, code, checksum, and 4 bytes of type-specific "Rest of
// Header") followed by a payload whose shape depends on Type.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (frm Frame) RawData() []byte { return frm.buf }

// Type returns the message type byte.
func (frm Frame) Type() Type { return Type(frm.buf[0]) }

// Code returns the raw code byte; its meaning depends on Type.
func (frm Frame) Code() uint8 { return frm.buf[1] }

// Checksum returns the checksum field as read off the wire.
func (frm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(frm.buf[2:4]) }

// Payload returns the bytes following the 8-byte header.
func (frm Frame) Payload() []byte { return frm.buf[sizeHeader:] }

// HasIntegrity reports whether the message's checksum, computed over the
// whole message (header, checksum field included, plus payload), is
// self-consistent (§4.7).
func (frm Frame) HasIntegrity() bool {
	return checksum.Checksum16U16([]uint16{
		checksum.Sum16U8(frm.buf[:sizeHeader]),
		checksum.Sum16U8(frm.Payload()),
	}) == 0
}

// ValidateSize checks the buffer is long enough for the fixed header.
func (frm Frame) ValidateSize(v *valid.Validator) {
	if len(frm.buf) < sizeHeader {
		v.AddError(errShort)
	}
}

// AsEcho returns the Echo/EchoReply typed view. Valid when
// Type() is TypeEcho or TypeEchoReply.
func (frm Frame) AsEcho() FrameEcho { return FrameEcho{frm} }

// FrameEcho exposes the identifier/sequence/data fields shared by Echo (8)
// and Echo Reply (0) messages.
type FrameEcho struct{ Frame }

func (frm FrameEcho) Identifier() uint16     { return binary.BigEndian.Uint16(frm.buf[4:6]) }
func (frm FrameEcho) SequenceNumber() uint16 { return binary.BigEndian.Uint16(frm.buf[6:8]) }
func (frm FrameEcho) Data() []byte           { return frm.buf[8:] }

// AsDestinationUnreachable returns the Destination Unreachable (3) typed view.
func (frm Frame) AsDestinationUnreachable() FrameDestinationUnreachable {
	return FrameDestinationUnreachable{frm}
}

// FrameDestinationUnreachable additionally exposes the next-hop MTU field,
// which is only meaningful for code 4 (Fragmentation Needed and DF Set).
type FrameDestinationUnreachable struct{ Frame }

func (frm FrameDestinationUnreachable) Code() CodeDestinationUnreachable {
	return CodeDestinationUnreachable(frm.Frame.Code())
}

// MTU returns the next-hop MTU and true, but only when Code() is
// CodeFragmentationNeededAndDFSet; otherwise (false, 0).
func (frm FrameDestinationUnreachable) MTU() (mtu uint16, ok bool) {
	if frm.Code() != CodeFragmentationNeededAndDFSet {
		return 0, false
	}
	return binary.BigEndian.Uint16(frm.buf[6:8]), true
}

// AsRedirect returns the Redirect (5) typed view.
func (frm Frame) AsRedirect() FrameRedirect { return FrameRedirect{frm} }

// FrameRedirect exposes the redirect scope code and gateway address.
type FrameRedirect struct{ Frame }

func (frm FrameRedirect) Code() CodeRedirect { return CodeRedirect(frm.Frame.Code()) }
func (frm FrameRedirect) Gateway() *[4]byte  { return (*[4]byte)(frm.buf[4:8]) }

// AsTimeExceeded returns the Time Exceeded (11) typed view.
func (frm Frame) AsTimeExceeded() FrameTimeExceeded { return FrameTimeExceeded{frm} }

type FrameTimeExceeded struct{ Frame }

func (frm FrameTimeExceeded) Code() CodeTimeExceeded { return CodeTimeExceeded(frm.Frame.Code()) }

// AsParameterProblem returns the Parameter Problem (12) typed view.
func (frm Frame) AsParameterProblem() FrameParameterProblem { return FrameParameterProblem{frm} }

// FrameParameterProblem exposes the offending-byte pointer, meaningful
// only when Code() == 0.
type FrameParameterProblem struct{ Frame }

func (frm FrameParameterProblem) Pointer() (pointer uint8, ok bool) {
	if frm.Code() != 0 {
		return 0, false
	}
	return frm.buf[4], true
}

// AsTimestamp returns the Timestamp/Timestamp Reply (13/14) typed view.
func (frm Frame) AsTimestamp() FrameTimestamp { return FrameTimestamp{frm} }

// FrameTimestamp exposes the identifier/sequence pair plus originate,
// receive, and transmit millisecond-since-midnight timestamps. Receive
// and Transmit are only present in a Timestamp Reply (Type ==
// TypeTimestampReply); they report ok=false for any other Type().
type FrameTimestamp struct{ Frame }

func (frm FrameTimestamp) Identifier() uint16     { return binary.BigEndian.Uint16(frm.buf[4:6]) }
func (frm FrameTimestamp) SequenceNumber() uint16 { return binary.BigEndian.Uint16(frm.buf[6:8]) }
func (frm FrameTimestamp) Originate() uint32      { return binary.BigEndian.Uint32(frm.Payload()[0:4]) }

func (frm FrameTimestamp) Receive() (ms uint32, ok bool) {
	if frm.Type() != TypeTimestampReply {
		return 0, false
	}
	return binary.BigEndian.Uint32(frm.Payload()[4:8]), true
}

func (frm FrameTimestamp) Transmit() (ms uint32, ok bool) {
	if frm.Type() != TypeTimestampReply {
		return 0, false
	}
	return binary.BigEndian.Uint32(frm.Payload()[8:12]), true
}

// AsInfoRequest returns the Information Request/Reply (15/16) typed view,
// carried only for completeness: both are deprecated.
func (frm Frame) AsInfoRequest() FrameInfoRequest { return FrameInfoRequest{frm} }

type FrameInfoRequest struct{ Frame }

func (frm FrameInfoRequest) Identifier() uint16     { return binary.BigEndian.Uint16(frm.buf[4:6]) }
func (frm FrameInfoRequest) SequenceNumber() uint16 { return binary.BigEndian.Uint16(frm.buf[6:8]) }

// AsAddressMask returns the Address Mask Request/Reply (17/18) typed view.
func (frm Frame) AsAddressMask() FrameAddressMask { return FrameAddressMask{frm} }

// FrameAddressMask exposes the identifier/sequence pair plus, for replies
// only, the 32-bit subnet mask.
type FrameAddressMask struct{ Frame }

func (frm FrameAddressMask) Identifier() uint16     { return binary.BigEndian.Uint16(frm.buf[4:6]) }
func (frm FrameAddressMask) SequenceNumber() uint16 { return binary.BigEndian.Uint16(frm.buf[6:8]) }

func (frm FrameAddressMask) Mask() (mask uint32, ok bool) {
	if frm.Type() != TypeAddressMaskReply {
		return 0, false
	}
	return binary.BigEndian.Uint32(frm.Payload()[0:4]), true
}
