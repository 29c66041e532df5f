package ethernet

import (
	"encoding/binary"
	"errors"

	"github.com/jedel1043/oxycap/macaddr"
	"github.com/jedel1043/oxycap/unknown"
	"github.com/jedel1043/oxycap/valid"
)

// NewFrame returns a Frame with data set to buf.
// An error is returned if the buffer size is smaller than 14.
// Users should still call [Frame.ValidateSize] before working
// with the payload of frames to avoid panics.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShort
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an Ethernet II frame, excluding the
// physical-layer preamble and frame-check sequence (the first byte of
// buf is the first byte of the destination address). See [IEEE 802.3].
//
// [IEEE 802.3]: https://standards.ieee.org/ieee/802.3/7071/
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (efrm Frame) RawData() []byte { return efrm.buf }

// DestinationHardwareAddr returns the target's hardware address.
func (efrm Frame) DestinationHardwareAddr() *macaddr.Addr {
	return macaddr.From6(efrm.buf[0:6])
}

// SourceHardwareAddr returns the sender's hardware address.
func (efrm Frame) SourceHardwareAddr() *macaddr.Addr {
	return macaddr.From6(efrm.buf[6:12])
}

// EtherTypeOrLength returns the EtherType/length field of the header.
// Callers should check [Type.IsLength] before treating the value as a
// protocol discriminant.
func (efrm Frame) EtherTypeOrLength() Type {
	return Type(binary.BigEndian.Uint16(efrm.buf[12:14]))
}

// Payload returns the portion of the buffer following the 14-byte header.
// Be sure to call [Frame.ValidateSize] beforehand to avoid panics.
func (efrm Frame) Payload() []byte { return efrm.buf[sizeHeader:] }

// NextHeader is the tagged variant produced by [Frame.Dispatch]: Kind
// names which of IPv4/IPv6/ARP/LLC/SNAP/Novell-raw/Other the payload is,
// and Payload is the remaining buffer borrowed for the child view.
type NextHeader struct {
	Kind    Kind
	RawType Type // the raw EtherType or length-field value read off the wire.
	Payload []byte
}

// String renders the variant's canonical display name; for KindOther it
// additionally names the raw EtherType.
func (nh NextHeader) String() string {
	if nh.Kind == KindOther {
		return "Other (" + nh.RawType.String() + ")"
	}
	return nh.Kind.String()
}

// Unknown returns the [unknown.Frame] fallback carrier for this variant.
// Only meaningful when Kind == KindOther.
func (nh NextHeader) Unknown() unknown.Frame {
	return unknown.Frame{TypeID: uint32(nh.RawType), Payload: nh.Payload}
}

// Dispatch classifies the EtherType/length field and returns the next
// layer as a closed tagged variant. See §4.2: values ≤ 1500 are IEEE
// 802.3 lengths, disambiguated further by the first two payload bytes.
func (efrm Frame) Dispatch() NextHeader {
	et := efrm.EtherTypeOrLength()
	payload := efrm.Payload()
	switch {
	case et == TypeIPv4:
		return NextHeader{Kind: KindIPv4, RawType: et, Payload: payload}
	case et == TypeIPv6:
		return NextHeader{Kind: KindIPv6, RawType: et, Payload: payload}
	case et == TypeARP:
		return NextHeader{Kind: KindARP, RawType: et, Payload: payload}
	case et.IsLength():
		return NextHeader{Kind: classifyLengthField(payload), RawType: et, Payload: payload}
	default:
		return NextHeader{Kind: KindOther, RawType: et, Payload: payload}
	}
}

func classifyLengthField(payload []byte) Kind {
	if len(payload) < 2 {
		return KindLLC
	}
	switch binary.BigEndian.Uint16(payload[0:2]) {
	case markerNovellRaw:
		return KindNovellRaw
	case markerSNAP:
		return KindSNAP
	default:
		return KindLLC
	}
}

//
// Validation API.
//

var errShort = errors.New("ethernet: buffer too short for header")

// ValidateSize checks the frame's length against the fixed header size.
func (efrm Frame) ValidateSize(v *valid.Validator) {
	if len(efrm.buf) < sizeHeader {
		v.AddError(errShort)
	}
}
