package ipv4

import (
	"errors"
	"fmt"
)

const sizeHeader = 20

var (
	errBadDSCP = errors.New("ipv4: dscp out of 6-bit range")
	errBadECN  = errors.New("ipv4: ecn out of 2-bit range")
)

// DSCP is the 6-bit Differentiated Services Code Point (RFC 2474), the top
// six bits of the header's second byte.
type DSCP uint8

// NewDSCP validates v fits in 6 bits before constructing a DSCP.
func NewDSCP(v uint8) (DSCP, error) {
	if v > 0x3f {
		return 0, errBadDSCP
	}
	return DSCP(v), nil
}

func (d DSCP) String() string { return fmt.Sprintf("DSCP(0x%02x)", uint8(d)) }

// ECN is the 2-bit Explicit Congestion Notification field (RFC 3168), the
// bottom two bits of the header's second byte.
type ECN uint8

// NewECN validates v fits in 2 bits before constructing an ECN.
func NewECN(v uint8) (ECN, error) {
	if v > 0x3 {
		return 0, errBadECN
	}
	return ECN(v), nil
}

func (e ECN) String() string {
	switch e {
	case 0:
		return "Not-ECT"
	case 1:
		return "ECT(1)"
	case 2:
		return "ECT(0)"
	default:
		return "CE"
	}
}

// FragmentOffset is the 13-bit fragment-offset field, counted in units of 8
// bytes relative to the start of the original unfragmented datagram.
type FragmentOffset uint16

func (fo FragmentOffset) Bytes() uint32 { return uint32(fo) * 8 }

// Flags holds the 3-bit fragmentation-control field of an IPv4 header:
// bit 2 (0b100) is the reserved/evil bit, bit 1 (0b010) is Don't Fragment,
// bit 0 (0b001) is More Fragments.
type Flags uint8

// IsEvil reports whether the reserved bit is set, per the [RFC 3514] joke
// extension; a [valid.Validator] with CheckEvil set treats this as an error.
//
// [RFC 3514]: https://datatracker.ietf.org/doc/html/rfc3514
func (f Flags) IsEvil() bool { return f&0b100 != 0 }

// DontFragment reports whether the datagram must not be fragmented.
func (f Flags) DontFragment() bool { return f&0b010 != 0 }

// MoreFragments is cleared on the final (or only) fragment of a datagram.
func (f Flags) MoreFragments() bool { return f&0b001 != 0 }
