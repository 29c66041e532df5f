// Package ipproto holds the IP protocol-number dispatch shared by the
// ipv4 and ipv6 views: both network-layer headers name their transport
// payload with the same IANA protocol-number space.
package ipproto

import "strconv"

// Proto is an IANA assigned-internet-protocol-number, as carried by the
// IPv4 "Protocol" field and the IPv6 "Next Header" field.
type Proto uint8

const (
	ICMP Proto = 0x01
	IGMP Proto = 0x02
	TCP  Proto = 0x06
	UDP  Proto = 0x11
)

// String renders the canonical "NAME (0xHH)" display form mandated for
// every dispatch enum, matching the teacher's stringer-table convention
// but with the hex code always inlined since the code space here is
// sparse (256 values, 4 named).
func (p Proto) String() string {
	switch p {
	case ICMP:
		return "ICMP (0x01)"
	case IGMP:
		return "IGMP (0x02)"
	case TCP:
		return "TCP (0x06)"
	case UDP:
		return "UDP (0x11)"
	default:
		return "Other (0x" + hex2(uint8(p)) + ")"
	}
}

func hex2(v uint8) string {
	const hexdigits = "0123456789ABCDEF"
	return string([]byte{hexdigits[v>>4], hexdigits[v&0xf]})
}

// IsTransport reports whether p names one of the two transport protocols
// that the IPv6 view dispatches in the core (TCP, UDP); anything else
// (including ICMP/IGMP, which IPv6 carries as ICMPv6/unused) is surfaced
// as a raw next-header value by the IPv6 view instead of a typed variant.
func (p Proto) IsTransport() bool { return p == TCP || p == UDP }

// AppendInt appends the protocol number as a plain decimal integer,
// useful for tabular/machine-readable output that does not want the
// display string.
func (p Proto) AppendInt(dst []byte) []byte { return strconv.AppendUint(dst, uint64(p), 10) }
