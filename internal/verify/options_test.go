package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pktverify/internal/eventlog"
	"pktverify/internal/eventlog/filter"
)

func TestNewRequest_Defaults(t *testing.T) {
	req, err := NewRequest("tx.log", "rx.log", Options{})
	require.NoError(t, err)
	require.Equal(t, eventlog.FormatText, req.Format)
	require.Equal(t, eventlog.Microseconds, req.Pcap.Unit)
	require.Zero(t, req.Pcap.Protocol)
}

func TestNewRequest_PortRequiresProtocol(t *testing.T) {
	_, err := NewRequest("tx.pcap", "rx.pcap", Options{Format: "pcap", Port: 9000})
	require.Error(t, err)

	req, err := NewRequest("tx.pcap", "rx.pcap", Options{Format: "pcap", Protocol: "udp", Port: 9000})
	require.NoError(t, err)
	require.Equal(t, eventlog.FormatPcap, req.Format)
	require.Equal(t, filter.UDP, req.Pcap.Protocol)
	require.Equal(t, uint16(9000), req.Pcap.Port)
}

func TestNewRequest_Invalid(t *testing.T) {
	for _, opts := range []Options{{Format: "xml"}, {PcapUnit: "h"}, {Protocol: "sctp"}} {
		_, err := NewRequest("a", "b", opts)
		require.Error(t, err, "%+v", opts)
	}
}
