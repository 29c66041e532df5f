package macaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRoundTrip(t *testing.T) {
	a := Addr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	assert.Equal(t, "00:11:22:33:44:55", a.String())

	got, err := Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestParseAcceptsDashes(t *testing.T) {
	got, err := Parse("00-11-22-33-44-55")
	require.NoError(t, err)
	assert.Equal(t, Addr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}, got)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("not-a-mac")
	assert.Error(t, err)
}

func TestBroadcast(t *testing.T) {
	assert.True(t, Broadcast().IsBroadcast())
	assert.False(t, (Addr{}).IsBroadcast())
}

func TestMulticastBit(t *testing.T) {
	assert.True(t, Addr{0x01}.IsMulticast())
	assert.False(t, Addr{0x00}.IsMulticast())
}

func TestFrom6IsZeroCopy(t *testing.T) {
	buf := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0xAA}
	a := From6(buf)
	buf[0] = 0xff
	assert.Equal(t, byte(0xff), a[0], "From6 must view the backing buffer, not copy it")
}
