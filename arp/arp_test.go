package arp

import (
	"testing"

	"github.com/jedel1043/oxycap/ethernet"
	"github.com/jedel1043/oxycap/valid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// e4 is the literal ARP-request scenario from the spec: HTYPE=1 (Ethernet),
// PTYPE=0x0800 (IPv4), HLEN=6, PLEN=4, OPER=1 (Request).
var e4 = []byte{
	0x00, 0x01, 0x08, 0x00, 0x06, 0x04, 0x00, 0x01,
	0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 192, 168, 1, 1,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 192, 168, 1, 2,
}

func TestRequestFields(t *testing.T) {
	frm, err := NewFrame(e4)
	require.NoError(t, err)
	assert.Equal(t, OpRequest, frm.Operation())
	assert.Equal(t, "Request", frm.Operation().String())

	htyp, hlen := frm.Hardware()
	assert.EqualValues(t, 1, htyp)
	assert.EqualValues(t, 6, hlen)

	ptyp, plen := frm.Protocol()
	assert.Equal(t, ethernet.TypeIPv4, ptyp)
	assert.EqualValues(t, 4, plen)

	sndhw, sndpt := frm.Sender()
	assert.Len(t, sndhw, 6)
	assert.Len(t, sndpt, 4)
	assert.Equal(t, []byte{192, 168, 1, 1}, sndpt)

	tgthw, tgtpt := frm.Target()
	assert.Len(t, tgthw, 6)
	assert.Equal(t, []byte{192, 168, 1, 2}, tgtpt)
}

func TestSender4Target4ZeroCopy(t *testing.T) {
	frm, err := NewFrame(e4)
	require.NoError(t, err)
	sndhw, sndpt := frm.Sender4()
	assert.True(t, sndhw.IsLocallyAdministered())
	assert.Equal(t, [4]byte{192, 168, 1, 1}, *sndpt)

	_, tgtpt := frm.Target4()
	assert.Equal(t, [4]byte{192, 168, 1, 2}, *tgtpt)
}

func TestValidateSizeRejectsTruncated(t *testing.T) {
	frm, err := NewFrame(e4[:len(e4)-1])
	require.NoError(t, err) // fixed header alone is still present.
	var v valid.Validator
	frm.ValidateSize(&v)
	assert.True(t, v.HasError())
}

func TestNewFrameShortHeader(t *testing.T) {
	_, err := NewFrame(make([]byte, 7))
	assert.Error(t, err)
}

func TestArbitraryAddressLengths(t *testing.T) {
	// HLEN=2, PLEN=2: the view must not assume 6/4 widths.
	buf := []byte{
		0x00, 0x06, 0x08, 0x00, 0x02, 0x02, 0x00, 0x01,
		0xaa, 0xbb, // sender hw
		0x01, 0x02, // sender proto
		0xcc, 0xdd, // target hw
		0x03, 0x04, // target proto
	}
	frm, err := NewFrame(buf)
	require.NoError(t, err)
	sndhw, sndpt := frm.Sender()
	assert.Equal(t, []byte{0xaa, 0xbb}, sndhw)
	assert.Equal(t, []byte{0x01, 0x02}, sndpt)
	tgthw, tgtpt := frm.Target()
	assert.Equal(t, []byte{0xcc, 0xdd}, tgthw)
	assert.Equal(t, []byte{0x03, 0x04}, tgtpt)
}
