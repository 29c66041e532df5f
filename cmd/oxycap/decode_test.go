package main

import (
	"encoding/binary"
	"testing"

	"github.com/jedel1043/oxycap/checksum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildEthernetIPv4UDP reconstructs the E1 scenario end to end: an
// Ethernet II frame carrying an IPv4 datagram carrying a UDP datagram,
// with both checksums computed so HasIntegrity() is true throughout.
func buildEthernetIPv4UDP(t *testing.T) []byte {
	t.Helper()
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	udpLen := 8 + len(payload)

	udpBuf := make([]byte, udpLen)
	binary.BigEndian.PutUint16(udpBuf[0:2], 0x0400)
	binary.BigEndian.PutUint16(udpBuf[2:4], 0x0800)
	binary.BigEndian.PutUint16(udpBuf[4:6], uint16(udpLen))
	copy(udpBuf[8:], payload)

	addressPartial := checksum.Sum16U8([]byte{0xc0, 0xa8, 0x00, 0x01, 0xc0, 0xa8, 0x00, 0x02})
	pseudo := checksum.Combine(addressPartial, 0x0011, uint16(udpLen))
	udpChecksum := checksum.CombineComplement(pseudo, checksum.Sum16U8(udpBuf))
	binary.BigEndian.PutUint16(udpBuf[6:8], udpChecksum)

	ipv4Buf := make([]byte, 20+len(udpBuf))
	ipv4Buf[0] = 0x45
	binary.BigEndian.PutUint16(ipv4Buf[2:4], uint16(len(ipv4Buf)))
	ipv4Buf[8] = 64
	ipv4Buf[9] = 0x11
	copy(ipv4Buf[12:16], []byte{0xc0, 0xa8, 0x00, 0x01})
	copy(ipv4Buf[16:20], []byte{0xc0, 0xa8, 0x00, 0x02})
	copy(ipv4Buf[20:], udpBuf)
	ipChecksum := checksum.Checksum16U8(ipv4Buf[:20])
	binary.BigEndian.PutUint16(ipv4Buf[10:12], ipChecksum)

	ethBuf := make([]byte, 14+len(ipv4Buf))
	copy(ethBuf[0:6], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	copy(ethBuf[6:12], []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55})
	binary.BigEndian.PutUint16(ethBuf[12:14], 0x0800)
	copy(ethBuf[14:], ipv4Buf)
	return ethBuf
}

func TestDecodeFrameWalksEthernetIPv4UDP(t *testing.T) {
	buf := buildEthernetIPv4UDP(t)
	rows, err := decodeFrame(linkTypeEthernet, buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Ethernet", rows[0].Protocol)
	assert.Equal(t, "IPv4", rows[1].Protocol)
	assert.Equal(t, "UDP", rows[2].Protocol)

	for _, row := range rows {
		assert.Empty(t, row.Errors, "protocol %s", row.Protocol)
	}

	findField := func(row int, name string) any {
		for _, f := range rows[row].Fields {
			if f.Name == name {
				return f.Value
			}
		}
		return nil
	}
	assert.Equal(t, true, findField(1, "integrity"))
	assert.Equal(t, true, findField(2, "integrity"))
	assert.Equal(t, uint16(0x0400), findField(2, "src_port"))
}

func TestDecodeFrameRejectsUnknownLinkType(t *testing.T) {
	_, err := decodeFrame(99, make([]byte, 14))
	assert.ErrorIs(t, err, errUnknownLinkType)
}

func TestDecodeFrameReportsShortEthernetBuffer(t *testing.T) {
	_, err := decodeFrame(linkTypeEthernet, make([]byte, 4))
	assert.Error(t, err)
}
