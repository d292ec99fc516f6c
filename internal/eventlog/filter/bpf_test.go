package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/bpf"
)

// ethIPv4 构造最小的 Ethernet+IPv4(IHL=5)+L4 端口头，足够喂给过滤器。
func ethIPv4(proto byte, srcPort, dstPort uint16) []byte {
	b := make([]byte, 14+20+8)
	b[12], b[13] = 0x08, 0x00
	b[14] = 0x45
	b[23] = proto
	b[34], b[35] = byte(srcPort>>8), byte(srcPort)
	b[36], b[37] = byte(dstPort>>8), byte(dstPort)
	return b
}

func TestPortBPF_Assembles(t *testing.T) {
	for _, port := range []uint16{0, 80, 9000} {
		raw, err := bpf.Assemble(PortBPF(UDP, port))
		require.NoError(t, err)
		require.NotEmpty(t, raw)
	}
}

func TestMatcher(t *testing.T) {
	m, err := NewMatcher(UDP, 9000)
	require.NoError(t, err)

	tests := []struct {
		name  string
		frame []byte
		want  bool
	}{
		{"udp dst", ethIPv4(17, 40000, 9000), true},
		{"udp src", ethIPv4(17, 9000, 40000), true},
		{"udp other port", ethIPv4(17, 40000, 53), false},
		{"tcp same port", ethIPv4(6, 40000, 9000), false},
		{"truncated", []byte{0x00, 0x01}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Match(tt.frame)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	arp := ethIPv4(17, 40000, 9000)
	arp[12], arp[13] = 0x08, 0x06
	got, err := m.Match(arp)
	require.NoError(t, err)
	require.False(t, got)
}

func TestMatcher_AnyPort(t *testing.T) {
	m, err := NewMatcher(TCP, 0)
	require.NoError(t, err)

	got, err := m.Match(ethIPv4(6, 1, 2))
	require.NoError(t, err)
	require.True(t, got)

	got, err = m.Match(ethIPv4(17, 1, 2))
	require.NoError(t, err)
	require.False(t, got)
}

func TestParseProtocol(t *testing.T) {
	p, err := ParseProtocol("TCP")
	require.NoError(t, err)
	require.Equal(t, TCP, p)

	p, err = ParseProtocol("")
	require.NoError(t, err)
	require.Zero(t, p)

	_, err = ParseProtocol("icmp")
	require.Error(t, err)
}
