// Package capture feeds raw frame bytes and a link-layer type tag to the
// decoder, either replayed from a pcap savefile ([Reader]) or pulled from
// a caller-opened live handle ([Device]). Neither adapter looks inside a
// frame; that is the decoder's job.
package capture

import (
	"encoding/binary"
	"errors"
)

const (
	globalHeaderLen = 24
	recordHeaderLen = 16
)

// Savefile magic numbers. The byte order of the rest of the file (and
// whether the record timestamp's second field carries microseconds or
// nanoseconds) is determined by which magic value is present.
const (
	magicMicroLE uint32 = 0xa1b2c3d4
	magicMicroBE uint32 = 0xd4c3b2a1
	magicNanoLE  uint32 = 0xa1b23c4d
	magicNanoBE  uint32 = 0x4d3cb2a1
)

var (
	errShortGlobalHeader = errors.New("capture: savefile shorter than global header")
	errShortRecordHeader = errors.New("capture: savefile record shorter than record header")
	errShortRecordData   = errors.New("capture: savefile record data truncated")
	errBadMagic          = errors.New("capture: unrecognized savefile magic number")
	errShortFrame        = errors.New("capture: live read shorter than a record header would require")
)

func resolveByteOrder(magic uint32) (order binary.ByteOrder, nanoseconds bool, ok bool) {
	switch magic {
	case magicMicroLE:
		return binary.LittleEndian, false, true
	case magicMicroBE:
		return binary.BigEndian, false, true
	case magicNanoLE:
		return binary.LittleEndian, true, true
	case magicNanoBE:
		return binary.BigEndian, true, true
	default:
		return nil, false, false
	}
}
