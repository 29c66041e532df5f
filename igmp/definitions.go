package igmp

import "errors"

const sizeHeader = 8

var errShort = errors.New("igmp: buffer shorter than 8-byte frame")

// Type is the IGMP message type byte, restricted to the v1/v2 values this
// core classifies (§4.8); any other value is surfaced raw.
type Type uint8

const (
	TypeMembershipQuery  Type = 0x11
	TypeMembershipReportV1 Type = 0x12
	TypeMembershipReportV2 Type = 0x16
	TypeLeaveGroup       Type = 0x17
)

func (t Type) String() string {
	switch t {
	case TypeMembershipQuery:
		return "Membership Query"
	case TypeMembershipReportV1:
		return "Membership Report v1"
	case TypeMembershipReportV2:
		return "Membership Report v2"
	case TypeLeaveGroup:
		return "Leave Group"
	default:
		return "Reserved"
	}
}

// Kind is the classification produced by [Frame.Classify], disambiguating
// the General/Group-Specific Query split that Type alone can't express.
type Kind uint8

const (
	KindGeneralQuery Kind = iota
	KindGroupSpecificQuery
	KindMembershipReport
	KindLeaveGroup
	KindReserved
)

func (k Kind) String() string {
	switch k {
	case KindGeneralQuery:
		return "General Query"
	case KindGroupSpecificQuery:
		return "Group-Specific Query"
	case KindMembershipReport:
		return "Membership Report"
	case KindLeaveGroup:
		return "Leave Group"
	default:
		return "Reserved"
	}
}
