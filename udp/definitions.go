package udp

import "errors"

const sizeHeader = 8

var (
	errShort  = errors.New("udp: short buffer")
	errBadLen = errors.New("udp: bad UDP length")
)

const udpProtoConst uint16 = 0x0011
