// Package correlate checks that a transmit log and a receive log line up
// position by position: same number of events, same size at every index.
// Payload content is not compared.
package correlate

import (
	"fmt"

	"pktverify/pkg/model"
)

type CountMismatchError struct {
	Expected int
	Actual   int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("Packet count mismatch: %d transmitted vs %d received", e.Expected, e.Actual)
}

type SizeMismatchError struct {
	Index    int
	Sent     int64
	Received int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("Packet size mismatch at index %d: sent %d, received %d", e.Index, e.Sent, e.Received)
}

// Pair is a transmit/receive sequence pair that passed Check.
type Pair struct {
	Transmit []model.Event
	Receive  []model.Event
}

func (p Pair) Len() int {
	return len(p.Transmit)
}

// Check reports the first structural divergence between tx and rx. The
// returned Pair holds the input slices unchanged.
func Check(tx, rx []model.Event) (Pair, error) {
	if len(tx) != len(rx) {
		return Pair{}, &CountMismatchError{Expected: len(tx), Actual: len(rx)}
	}
	for i := range tx {
		if tx[i].ByteCount != rx[i].ByteCount {
			return Pair{}, &SizeMismatchError{Index: i, Sent: tx[i].ByteCount, Received: rx[i].ByteCount}
		}
	}
	return Pair{Transmit: tx, Receive: rx}, nil
}
