package icmp

import (
	"encoding/binary"
	"testing"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEcho(id, seq uint16, data []byte) []byte {
	buf := make([]byte, 8+len(data))
	buf[0] = byte(TypeEcho)
	binary.BigEndian.PutUint16(buf[4:6], id)
	binary.BigEndian.PutUint16(buf[6:8], seq)
	copy(buf[8:], data)
	cs := checksum.Checksum16U16([]uint16{
		checksum.Sum16U8(buf[:8]),
		checksum.Sum16U8(buf[8:]),
	})
	binary.BigEndian.PutUint16(buf[2:4], cs)
	return buf
}

func TestEchoFieldsAndIntegrity(t *testing.T) {
	buf := buildEcho(0x1234, 1, []byte("ping"))
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, TypeEcho, frm.Type())
	assert.True(t, frm.HasIntegrity())

	echo := frm.AsEcho()
	assert.EqualValues(t, 0x1234, echo.Identifier())
	assert.EqualValues(t, 1, echo.SequenceNumber())
	assert.Equal(t, []byte("ping"), echo.Data())
}

func TestIntegrityBreaksOnCorruption(t *testing.T) {
	buf := buildEcho(1, 1, []byte("x"))
	buf[len(buf)-1] ^= 0xff
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	assert.False(t, frm.HasIntegrity())
}

func TestDestinationUnreachableMTUOnlyForCode4(t *testing.T) {
	buf := make([]byte, 8)
	buf[0] = byte(TypeDestinationUnreachable)
	buf[1] = byte(CodeFragmentationNeededAndDFSet)
	binary.BigEndian.PutUint16(buf[6:8], 1400)
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	du := frm.AsDestinationUnreachable()
	mtu, ok := du.MTU()
	assert.True(t, ok)
	assert.EqualValues(t, 1400, mtu)

	buf[1] = byte(CodeHostUnreachable)
	frm2, _ := NewFrame(buf)
	_, ok = frm2.AsDestinationUnreachable().MTU()
	assert.False(t, ok)
}

func TestParameterProblemPointerOnlyForCode0(t *testing.T) {
	buf := make([]byte, 8)
	buf[0] = byte(TypeParameterProblem)
	buf[4] = 7
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	ptr, ok := frm.AsParameterProblem().Pointer()
	assert.True(t, ok)
	assert.EqualValues(t, 7, ptr)

	buf[1] = 1
	frm2, _ := NewFrame(buf)
	_, ok = frm2.AsParameterProblem().Pointer()
	assert.False(t, ok)
}

func TestTimestampReplyFields(t *testing.T) {
	buf := make([]byte, 8+12)
	buf[0] = byte(TypeTimestampReply)
	binary.BigEndian.PutUint32(buf[8:12], 1000)
	binary.BigEndian.PutUint32(buf[12:16], 2000)
	binary.BigEndian.PutUint32(buf[16:20], 3000)
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	ts := frm.AsTimestamp()
	assert.EqualValues(t, 1000, ts.Originate())
	recv, ok := ts.Receive()
	assert.True(t, ok)
	assert.EqualValues(t, 2000, recv)
	xmit, ok := ts.Transmit()
	assert.True(t, ok)
	assert.EqualValues(t, 3000, xmit)
}

func TestTimestampRequestHasNoReceiveTransmit(t *testing.T) {
	buf := make([]byte, 8+4)
	buf[0] = byte(TypeTimestamp)
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	_, ok := frm.AsTimestamp().Receive()
	assert.False(t, ok)
}

func TestReservedTypeStringIsReserved(t *testing.T) {
	assert.Equal(t, "Reserved", Type(200).String())
}
