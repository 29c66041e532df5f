package capture

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendGlobalHeader(dst []byte, linkType uint32) []byte {
	var hdr [globalHeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[0:4], magicMicroLE)
	binary.LittleEndian.PutUint16(hdr[4:6], 2)
	binary.LittleEndian.PutUint16(hdr[6:8], 4)
	binary.LittleEndian.PutUint32(hdr[16:20], 65535)
	binary.LittleEndian.PutUint32(hdr[20:24], linkType)
	return append(dst, hdr[:]...)
}

func appendRecord(dst []byte, sec, usec uint32, data []byte) []byte {
	var hdr [recordHeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[0:4], sec)
	binary.LittleEndian.PutUint32(hdr[4:8], usec)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(data)))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(len(data)))
	dst = append(dst, hdr[:]...)
	return append(dst, data...)
}

// e1E3Savefile builds a synthetic two-record savefile covering the E1
// (Ethernet-IPv4-UDP) and E3 (Ethernet-IPv6-TCP) scenario bytes.
func e1E3Savefile() (e1, e3 []byte, savefile []byte) {
	e1 = []byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x08, 0x00,
		0x45, 0x00, 0x00, 0x20, 0x00, 0x01, 0x00, 0x00, 0x40, 0x11, 0xf9, 0x78,
		0xc0, 0xa8, 0x00, 0x01, 0xc0, 0xa8, 0x00, 0x02,
		0x04, 0x00, 0x08, 0x00, 0x00, 0x0c, 0x00, 0x00,
	}
	e3 = []byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x86, 0xdd,
		0x60, 0x00, 0x00, 0x00, 0x00, 0x14, 0x06, 0x40,
	}
	savefile = appendGlobalHeader(nil, 1)
	savefile = appendRecord(savefile, 1000, 500000, e1)
	savefile = appendRecord(savefile, 1001, 0, e3)
	return e1, e3, savefile
}

func TestReaderReplaysRecordsVerbatim(t *testing.T) {
	e1, e3, savefile := e1E3Savefile()
	rd, err := NewReader(bytes.NewReader(savefile))
	require.NoError(t, err)
	assert.EqualValues(t, 1, rd.LinkType())

	rec1, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, e1, rec1.Data)
	assert.EqualValues(t, 1, rec1.LinkType)
	assert.False(t, rec1.Truncated)
	assert.True(t, rec1.Timestamp.Equal(time.Unix(1000, 500000*1000)))

	rec2, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, e3, rec2.Data)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderRejectsBadMagic(t *testing.T) {
	buf := make([]byte, globalHeaderLen)
	_, err := NewReader(bytes.NewReader(buf))
	assert.ErrorIs(t, err, errBadMagic)
}

func TestReaderShortGlobalHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader(make([]byte, 4)))
	assert.ErrorIs(t, err, errShortGlobalHeader)
}

func TestReaderTruncatedRecordMarked(t *testing.T) {
	savefile := appendGlobalHeader(nil, 1)
	var hdr [recordHeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[8:12], 4)
	binary.LittleEndian.PutUint32(hdr[12:16], 64)
	savefile = append(savefile, hdr[:]...)
	savefile = append(savefile, []byte{0xde, 0xad, 0xbe, 0xef}...)

	rd, err := NewReader(bytes.NewReader(savefile))
	require.NoError(t, err)
	rec, err := rd.Next()
	require.NoError(t, err)
	assert.True(t, rec.Truncated)
}

type fakeHandle struct {
	frames [][]byte
	i      int
}

func (f *fakeHandle) Read(p []byte) (int, error) {
	if f.i >= len(f.frames) {
		return 0, io.EOF
	}
	n := copy(p, f.frames[f.i])
	f.i++
	return n, nil
}

func TestDeviceReadFrameStampsAndTags(t *testing.T) {
	h := &fakeHandle{frames: [][]byte{{1, 2, 3, 4}}}
	dev := NewDevice(h, 1, 1500)
	frm, err := dev.ReadFrame(2000, 250000)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, frm.Data)
	assert.EqualValues(t, 1, frm.LinkType)
	assert.True(t, frm.Timestamp.Equal(NewTimestamp(2000, 250000)))
}

func TestNewTimestampDistinguishesSecAndUsec(t *testing.T) {
	a := NewTimestamp(5, 5)
	b := NewTimestamp(5, 6)
	assert.False(t, a.Equal(b))
}
