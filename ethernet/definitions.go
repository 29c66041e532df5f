package ethernet

const sizeHeader = 14

// Type is the 16-bit EtherType/length field of an Ethernet II header.
// Values ≤ 1500 are not EtherTypes at all but IEEE 802.3 payload lengths;
// see [Type.IsLength].
type Type uint16

// IsLength returns true if t is actually the size of the payload (IEEE
// 802.3) and must NOT be interpreted as an EtherType. This value is never
// ambiguous: 1500 itself is always a length, never an EtherType, per the
// standard.
func (t Type) IsLength() bool { return t <= 1500 }

// Registered EtherType values. Only TypeIPv4, TypeARP and TypeIPv6 drive
// dispatch; the rest are kept so Type.String() can name a value the
// dispatch table treats as opaque.
const (
	TypeIPv4                Type = 0x0800 // IPv4
	TypeARP                 Type = 0x0806 // ARP
	TypeWakeOnLAN           Type = 0x0842 // wake on LAN
	TypeTRILL               Type = 0x22F3 // TRILL
	TypeDECnetPhase4        Type = 0x6003 // DECnetPhase4
	TypeRARP                Type = 0x8035 // RARP
	TypeAppleTalk           Type = 0x809B // AppleTalk
	TypeAARP                Type = 0x80F3 // AARP
	TypeIPX1                Type = 0x8137 // IPx1
	TypeIPX2                Type = 0x8138 // IPx2
	TypeVLAN                Type = 0x8100 // VLAN
	TypeIPv6                Type = 0x86DD // IPv6
	TypeEthernetFlowControl Type = 0x8808 // EthernetFlowCtl
	TypeIEEE802_3           Type = 0x8809 // IEEE802.3
	TypeMPLSUnicast         Type = 0x8847 // MPLS Unicast
	TypeMPLSMulticast       Type = 0x8848 // MPLS Multicast
	TypePPPoEDiscovery      Type = 0x8863 // PPPoE discovery
	TypePPPoESession        Type = 0x8864 // PPPoE session
	TypeIEEE802_1X          Type = 0x888E // IEEE 802.1x
	TypeLLDP                Type = 0x88CC // LLDP
	TypeIEEE1588            Type = 0x88F7 // IEEE 1588
	TypeFCoE                Type = 0x8906 // FCoE
	TypeServiceVLAN         Type = 0x88A8 // service VLAN
)

// Length-field payload markers: when Type.IsLength() is true, these are
// the first two bytes of the payload that further classify the frame.
const (
	markerNovellRaw = 0xFFFF
	markerSNAP      = 0xAAAA
)

// Kind is the closed tagged-union discriminant produced by [Frame.Dispatch].
// New protocols must be added here, not via an open registry: the
// dispatch surface is bounded by the handful of cases the core decodes.
type Kind uint8

const (
	KindIPv4 Kind = iota
	KindIPv6
	KindARP
	KindLLC
	KindSNAP
	KindNovellRaw
	KindOther
)

// String renders the canonical display name and, where applicable, the
// registered hex code, matching the wire format's own terminology rather
// than a generic "case N" label.
func (k Kind) String() string {
	switch k {
	case KindIPv4:
		return "IPv4 (0x0800)"
	case KindIPv6:
		return "IPv6 (0x86DD)"
	case KindARP:
		return "ARP (0x0806)"
	case KindLLC:
		return "IEEE 802.2 LLC (< 1500)"
	case KindSNAP:
		return "IEEE 802.2 SNAP (< 1500, payload begins with 0xAAAA)"
	case KindNovellRaw:
		return "Novell raw IEEE 802.3 (< 1500, payload begins with 0xFFFF)"
	default:
		return "Other"
	}
}
