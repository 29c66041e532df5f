package llc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE5UFrameSABMECommand(t *testing.T) {
	// SABME control byte: bits [0:2)=11 (U-frame), command direction.
	// reverse8 then (reversed&0x07)|((reversed&0x30)>>1) must yield
	// 0b11_110 for SABME per the worked example in §4.3/§8 E5.
	var control byte
	for b := 0; b < 256; b++ {
		cb := byte(b)
		if cb&0x03 != 0x03 {
			continue
		}
		r := reverse8(cb)
		code := (r & 0x07) | ((r & 0x30) >> 1)
		if code == 0b11_110 {
			control = cb
			break
		}
	}
	require.NotZero(t, control)

	buf := []byte{0x06, 0x06, control} // DSAP=IP, SSAP=IP command (bit0 clear).
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	assert.True(t, frm.IsCommand())
	ctrl, err := frm.Control()
	require.NoError(t, err)
	assert.Equal(t, KindU, ctrl.Kind)
	assert.Equal(t, UCodeSABME, ctrl.UCode)
	assert.Equal(t, control&0x10 != 0, ctrl.PollFinal)
}

func TestUCodeUnrecognizedIsError(t *testing.T) {
	// 0b01_011 command has no ISO 7776 assignment in ucodeFromBits.
	var control byte
	for b := 0; b < 256; b++ {
		cb := byte(b)
		if cb&0x03 != 0x03 {
			continue
		}
		r := reverse8(cb)
		code := (r & 0x07) | ((r & 0x30) >> 1)
		if code == 0b01_011 {
			control = cb
			break
		}
	}
	buf := []byte{0x00, 0x00, control}
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	_, err = frm.Control()
	assert.Error(t, err)
}

func TestBitReversalIdempotency(t *testing.T) {
	// Every 5-bit U-code output must map back to at most one 8-bit
	// control-byte encoding among the 64 U-frame-tagged control bytes
	// (property 7).
	seen := map[uint8]byte{}
	for b := 0; b < 256; b++ {
		cb := byte(b)
		if cb&0x03 != 0x03 {
			continue
		}
		r := reverse8(cb)
		code := (r & 0x07) | ((r & 0x30) >> 1)
		if prev, ok := seen[code]; ok {
			t.Fatalf("code %05b produced by both 0x%02x and 0x%02x", code, prev, cb)
		}
		seen[code] = cb
	}
}

func TestIFrameFields(t *testing.T) {
	// A non-U control field is 16 bits wide. N(S)=3 in bits 1-7 of the
	// first control byte (0000011 0); N(R)=5 in bits 1-7 and P/F=1 in
	// bit 0 of the second (0000101 1).
	buf := []byte{0x04, 0x05, 0b0000011_0, 0b0000101_1} // SSAP bit0 set -> response.
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	assert.False(t, frm.IsCommand())
	ctrl, err := frm.Control()
	require.NoError(t, err)
	assert.Equal(t, KindIExtended, ctrl.Kind)
	assert.EqualValues(t, 3, ctrl.NS)
	assert.EqualValues(t, 5, ctrl.NR)
	assert.True(t, ctrl.PollFinal)
}

func TestSFrameFields(t *testing.T) {
	// A non-U control field is 16 bits wide. First control byte: bits 0-1
	// = 01 (S-frame), scode=REJ(01) in bits 2-3. Second: N(R)=2 in bits
	// 1-7, P/F=0 in bit 0.
	buf := []byte{0x00, 0x00, 0b0000_01_01, 0b0000010_0}
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	ctrl, err := frm.Control()
	require.NoError(t, err)
	assert.Equal(t, KindSExtended, ctrl.Kind)
	assert.Equal(t, SCodeREJ, ctrl.SCode)
	assert.EqualValues(t, 2, ctrl.NR)
}

func TestExtendedControlWidthIsFourBytes(t *testing.T) {
	// First control byte with low bits 0b00 -> I-frame extended, 16-bit control.
	buf := []byte{0x00, 0x00, 0b0000_0000, 0b0000_0001} // P/F bit0 of low byte set.
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	ctrl, err := frm.Control()
	require.NoError(t, err)
	assert.Equal(t, KindIExtended, ctrl.Kind)
	assert.True(t, ctrl.PollFinal)
}

func TestSAPNames(t *testing.T) {
	assert.Equal(t, "IP", SAP(0x06).String())
	assert.Equal(t, "SNAP", SAP(0xAA).String())
	assert.Equal(t, "SAP(0x11)", SAP(0x11).String())
}

func TestNewFrameShortBuffer(t *testing.T) {
	_, err := NewFrame([]byte{0x00, 0x00})
	assert.Error(t, err)
}
