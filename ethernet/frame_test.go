package ethernet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// e1 is the literal Ethernet-IPv4-UDP scenario from the spec.
var e1 = []byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x08, 0x00,
	0x45, 0x00, 0x00, 0x20, 0x00, 0x01, 0x00, 0x00, 0x40, 0x11, 0xf9, 0x78,
	0xc0, 0xa8, 0x00, 0x01, 0xc0, 0xa8, 0x00, 0x02,
	0x04, 0x00, 0x08, 0x00, 0x00, 0x0c, 0x00, 0x00,
}

func TestFrameFields(t *testing.T) {
	frm, err := NewFrame(e1)
	require.NoError(t, err)
	assert.Equal(t, "00:11:22:33:44:55", frm.SourceHardwareAddr().String())
	assert.True(t, frm.DestinationHardwareAddr().IsBroadcast())
	assert.Equal(t, TypeIPv4, frm.EtherTypeOrLength())
}

func TestDispatchIPv4(t *testing.T) {
	frm, err := NewFrame(e1)
	require.NoError(t, err)
	nh := frm.Dispatch()
	assert.Equal(t, KindIPv4, nh.Kind)
	assert.Equal(t, "IPv4 (0x0800)", nh.String())
	assert.Len(t, nh.Payload, len(e1)-sizeHeader)
}

func TestDispatchLengthFieldVariants(t *testing.T) {
	mk := func(payloadPrefix ...byte) Frame {
		buf := make([]byte, sizeHeader+len(payloadPrefix))
		buf[12] = 0x00
		buf[13] = 0x20 // length = 32, a valid "IsLength" value.
		copy(buf[sizeHeader:], payloadPrefix)
		frm, err := NewFrame(buf)
		require.NoError(t, err)
		return frm
	}

	assert.Equal(t, KindSNAP, mk(0xAA, 0xAA).Dispatch().Kind)
	assert.Equal(t, KindNovellRaw, mk(0xFF, 0xFF).Dispatch().Kind)
	assert.Equal(t, KindLLC, mk(0x42, 0x42).Dispatch().Kind)
}

func TestDispatchOther(t *testing.T) {
	buf := make([]byte, sizeHeader)
	buf[12], buf[13] = 0x88, 0xB5 // unregistered, > 1500
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	nh := frm.Dispatch()
	assert.Equal(t, KindOther, nh.Kind)
}

func TestNewFrameShortBuffer(t *testing.T) {
	_, err := NewFrame(make([]byte, 13))
	assert.Error(t, err)
}
