package capture

import (
	"encoding/binary"
	"io"
	"time"
)

// Record is one frame replayed from a savefile: its capture timestamp,
// the savefile's declared link-layer type, and the captured bytes.
// Truncated is true when the capture device snapshotted fewer bytes
// than the frame's true wire length (orig_len > len(Data)).
type Record struct {
	Timestamp time.Time
	LinkType  uint32
	Data      []byte
	Truncated bool
}

// Reader replays frames from a pcap savefile: a 24-byte global header
// followed by a sequence of (16-byte record header, frame bytes) pairs.
// Reader only needs an io.Reader, so savefiles on disk and in-memory
// fixtures work identically.
type Reader struct {
	r          io.Reader
	order      binary.ByteOrder
	nanosecond bool
	linkType   uint32
	snapLen    uint32
}

// NewReader reads and validates r's global header, then returns a
// Reader ready to replay records via [Reader.Next].
func NewReader(r io.Reader) (*Reader, error) {
	var hdr [globalHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errShortGlobalHeader
		}
		return nil, err
	}
	// The magic number is the only field whose byte order is known in
	// advance (native-endian uint32), so it self-describes the order
	// of every field after it.
	magicLE := binary.LittleEndian.Uint32(hdr[0:4])
	magicBE := binary.BigEndian.Uint32(hdr[0:4])
	order, nano, ok := resolveByteOrder(magicLE)
	if !ok {
		order, nano, ok = resolveByteOrder(magicBE)
	}
	if !ok {
		return nil, errBadMagic
	}
	return &Reader{
		r:          r,
		order:      order,
		nanosecond: nano,
		snapLen:    order.Uint32(hdr[16:20]),
		linkType:   order.Uint32(hdr[20:24]),
	}, nil
}

// LinkType returns the link-layer type declared in the global header,
// shared by every record in the savefile.
func (rd *Reader) LinkType() uint32 { return rd.linkType }

// SnapLen returns the maximum per-frame capture length declared in the
// global header.
func (rd *Reader) SnapLen() uint32 { return rd.snapLen }

// Next reads and returns the next record, allocating a fresh slice for
// its data. It returns io.EOF once the savefile is exhausted.
func (rd *Reader) Next() (Record, error) {
	var hdr [recordHeaderLen]byte
	if _, err := io.ReadFull(rd.r, hdr[:]); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, errShortRecordHeader
	}
	sec := rd.order.Uint32(hdr[0:4])
	subsec := rd.order.Uint32(hdr[4:8])
	inclLen := rd.order.Uint32(hdr[8:12])
	origLen := rd.order.Uint32(hdr[12:16])

	data := make([]byte, inclLen)
	if _, err := io.ReadFull(rd.r, data); err != nil {
		return Record{}, errShortRecordData
	}

	var usec int64
	if rd.nanosecond {
		usec = int64(subsec) / 1000
	} else {
		usec = int64(subsec)
	}

	return Record{
		Timestamp: NewTimestamp(int64(sec), usec),
		LinkType:  rd.linkType,
		Data:      data,
		Truncated: origLen > inclLen,
	}, nil
}
