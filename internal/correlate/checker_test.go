package correlate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pktverify/pkg/model"
)

func events(pairs ...[2]int64) []model.Event {
	out := make([]model.Event, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, model.Event{Timestamp: p[0], ByteCount: p[1]})
	}
	return out
}

func TestCheck_CountMismatch(t *testing.T) {
	_, err := Check(events([2]int64{1, 10}, [2]int64{2, 20}), events([2]int64{1, 10}))

	var cm *CountMismatchError
	require.True(t, errors.As(err, &cm), "err=%v", err)
	require.Equal(t, 2, cm.Expected)
	require.Equal(t, 1, cm.Actual)
	require.Equal(t, "Packet count mismatch: 2 transmitted vs 1 received", err.Error())
}

func TestCheck_CountBeforeSize(t *testing.T) {
	// 长度不同时不比较大小，即便第 0 个就不一样。
	_, err := Check(events([2]int64{1, 10}), events([2]int64{1, 99}, [2]int64{2, 20}))
	var cm *CountMismatchError
	require.True(t, errors.As(err, &cm), "err=%v", err)
}

func TestCheck_FirstSizeMismatch(t *testing.T) {
	tx := events([2]int64{1, 10}, [2]int64{2, 20}, [2]int64{3, 30}, [2]int64{4, 40})
	rx := events([2]int64{1, 10}, [2]int64{2, 25}, [2]int64{3, 30}, [2]int64{4, 41})

	_, err := Check(tx, rx)
	var sm *SizeMismatchError
	require.True(t, errors.As(err, &sm), "err=%v", err)
	require.Equal(t, SizeMismatchError{Index: 1, Sent: 20, Received: 25}, *sm)
	require.Equal(t, "Packet size mismatch at index 1: sent 20, received 25", err.Error())
}

func TestCheck_TimestampsIgnored(t *testing.T) {
	tx := events([2]int64{1, 10}, [2]int64{2, 20})
	rx := events([2]int64{100, 10}, [2]int64{-3, 20})

	p, err := Check(tx, rx)
	require.NoError(t, err)
	require.Equal(t, tx, p.Transmit)
	require.Equal(t, rx, p.Receive)
	require.Equal(t, 2, p.Len())
}

func TestCheck_Empty(t *testing.T) {
	p, err := Check(nil, []model.Event{})
	require.NoError(t, err)
	require.Zero(t, p.Len())
}
