package ethernet

import "strconv"

var typeNames = map[Type]string{
	TypeIPv4:                "IPv4",
	TypeARP:                 "ARP",
	TypeWakeOnLAN:           "WakeOnLAN",
	TypeTRILL:               "TRILL",
	TypeDECnetPhase4:        "DECnetPhase4",
	TypeRARP:                "RARP",
	TypeAppleTalk:           "AppleTalk",
	TypeAARP:                "AARP",
	TypeIPX1:                "IPX1",
	TypeIPX2:                "IPX2",
	TypeVLAN:                "VLAN",
	TypeIPv6:                "IPv6",
	TypeEthernetFlowControl: "EthernetFlowControl",
	TypeIEEE802_3:           "IEEE802.3",
	TypeMPLSUnicast:         "MPLSUnicast",
	TypeMPLSMulticast:       "MPLSMulticast",
	TypePPPoEDiscovery:      "PPPoEDiscovery",
	TypePPPoESession:        "PPPoESession",
	TypeIEEE802_1X:          "IEEE802.1X",
	TypeLLDP:                "LLDP",
	TypeIEEE1588:            "IEEE1588",
	TypeFCoE:                "FCoE",
	TypeServiceVLAN:         "ServiceVLAN",
}

// String returns the registered name for t, or its raw hex value if t is
// unregistered (including when t is a length field, not an EtherType).
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Type(0x" + strconv.FormatUint(uint64(t), 16) + ")"
}
