package capture

import "time"

// NewTimestamp builds a capture timestamp from a whole-second count and
// a microsecond remainder, kept as two distinct named parameters rather
// than a single "seconds.fraction" value. Both parameters are int64, so a
// call that passes the same tv_sec field for both still typechecks and
// silently produces a wrong timestamp.
func NewTimestamp(sec, usec int64) time.Time {
	return time.Unix(sec, usec*int64(time.Microsecond))
}

// Frame is one packet pulled from a live [Device]: its timestamp, the
// device's declared link-layer type, and the bytes read for this frame.
type Frame struct {
	Timestamp time.Time
	LinkType  uint32
	Data      []byte
}

// liveSource is satisfied by a file-like handle that yields one frame
// per Read call, e.g. a packet socket or an opened TAP device. Capture
// never opens or enumerates such a handle itself; the caller does, and
// hands it to [NewDevice].
type liveSource interface {
	Read(p []byte) (n int, err error)
}

// Device is a minimal live-capture source: it reads discrete frames
// from a caller-supplied handle and stamps each with a timestamp built
// from caller-supplied clock values, without ever dialing the OS.
type Device struct {
	src      liveSource
	linkType uint32
	buf      []byte
}

// NewDevice wraps src, an already-open file-like handle that returns
// one frame per Read, reusing an mtu-sized scratch buffer for reads.
func NewDevice(src liveSource, linkType uint32, mtu int) *Device {
	return &Device{src: src, linkType: linkType, buf: make([]byte, mtu)}
}

// ReadFrame reads one frame from the device and stamps it with the
// timestamp NewTimestamp(sec, usec) produces. sec/usec are supplied by
// the caller (typically read off the handle's own timestamping
// mechanism, e.g. SO_TIMESTAMP) since Device has no clock of its own.
//
// The returned Frame's Data aliases Device's internal scratch buffer
// and is only valid until the next call to ReadFrame.
func (d *Device) ReadFrame(sec, usec int64) (Frame, error) {
	n, err := d.src.Read(d.buf)
	if err != nil {
		return Frame{}, err
	}
	if n == 0 {
		return Frame{}, errShortFrame
	}
	return Frame{
		Timestamp: NewTimestamp(sec, usec),
		LinkType:  d.linkType,
		Data:      d.buf[:n],
	}, nil
}
