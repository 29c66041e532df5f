package ipv6

import (
	"errors"

	"github.com/jedel1043/oxycap/ipv4"
)

const sizeHeader = 40

var (
	errShortFrame = errors.New("ipv6: payload length exceeds buffer")
	errShortBuf   = errors.New("ipv6: buffer shorter than 40-byte header")
	errBadVersion = errors.New("ipv6: version nibble is not 6")
)

// TrafficClass is the 8-bit traffic-class field (RFC 8200 §3): the same
// DSCP/ECN split as IPv4's ToS byte.
type TrafficClass uint8

func (tc TrafficClass) DSCP() ipv4.DSCP { return ipv4.DSCP(tc >> 2) }
func (tc TrafficClass) ECN() ipv4.ECN   { return ipv4.ECN(tc & 0x3) }

// FlowLabel is the 20-bit flow-label field (RFC 8200 §3), used by routers
// to identify packets belonging to the same flow without inspecting
// transport-layer headers.
type FlowLabel uint32
