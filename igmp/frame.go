package igmp

import (
	"encoding/binary"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/jedel1043/oxycap/valid"
)

// NewFrame returns a Frame over buf. An error is returned if buf is
// shorter than the fixed 8-byte IGMP v1/v2 layout.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShort
	}
	return Frame{buf: buf[:sizeHeader]}, nil
}

// Frame is a zero-copy view over an IGMP v1/v2 message (RFC 1112/RFC
// 2236): a single fixed 8-byte layout, no variable payload.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (frm Frame) RawData() []byte { return frm.buf }

// Type returns the message type byte.
func (frm Frame) Type() Type { return Type(frm.buf[0]) }

// MaxResponseTime is meaningful for query messages; in units of 1/10 second.
func (frm Frame) MaxResponseTime() uint8 { return frm.buf[1] }

// Checksum returns the checksum field as read off the wire.
func (frm Frame) Checksum() uint16 { return binary.BigEndian.Uint16(frm.buf[2:4]) }

// GroupAddr returns a pointer to the 4-byte multicast group address; the
// unspecified address (0.0.0.0) marks a General Query.
func (frm Frame) GroupAddr() *[4]byte { return (*[4]byte)(frm.buf[4:8]) }

// HasIntegrity reports whether the one's-complement sum of the whole
// 8-byte frame (checksum field included) folds to zero.
func (frm Frame) HasIntegrity() bool {
	return checksum.Sum16U8(frm.buf) == 0xffff
}

func isUnspecified(addr *[4]byte) bool {
	return *addr == [4]byte{}
}

// Classify disambiguates General Query from Group-Specific Query (both
// share Type 0x11) using the group address, and maps the two report
// types onto a single KindMembershipReport (§4.8).
func (frm Frame) Classify() Kind {
	switch frm.Type() {
	case TypeMembershipQuery:
		if isUnspecified(frm.GroupAddr()) {
			return KindGeneralQuery
		}
		return KindGroupSpecificQuery
	case TypeMembershipReportV1, TypeMembershipReportV2:
		return KindMembershipReport
	case TypeLeaveGroup:
		return KindLeaveGroup
	default:
		return KindReserved
	}
}

// ValidateSize checks the buffer is long enough for the fixed 8-byte frame.
func (frm Frame) ValidateSize(v *valid.Validator) {
	if len(frm.buf) < sizeHeader {
		v.AddError(errShort)
	}
}
