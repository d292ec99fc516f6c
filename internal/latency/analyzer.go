// Package latency derives per-packet latency from a matched transmit/receive
// pair and summarises its distribution.
package latency

import (
	"fmt"

	"pktverify/internal/correlate"
)

type NegativeLatencyError struct {
	Index      int
	TransmitTS int64
	ReceiveTS  int64
}

func (e *NegativeLatencyError) Error() string {
	return fmt.Sprintf("Invalid latency at index %d: receive time earlier than transmit time", e.Index)
}

// RangeError means receive - transmit does not fit in an int64.
type RangeError struct {
	Index      int
	TransmitTS int64
	ReceiveTS  int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("Invalid latency at index %d: %d - %d overflows a 64-bit integer", e.Index, e.ReceiveTS, e.TransmitTS)
}

// InsufficientDataError means there are too few samples for a statistic to be defined.
type InsufficientDataError struct {
	Count    int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("Insufficient data: %d latency samples, need at least %d", e.Count, e.Required)
}

type Report struct {
	Latencies []int64
	Mean      float64
	Median    float64
	P999      float64
}

// Latencies returns receive - transmit per position, stopping at the first
// negative value or the first difference that overflows int64.
func Latencies(p correlate.Pair) ([]int64, error) {
	out := make([]int64, p.Len())
	for i := range p.Transmit {
		tx, rx := p.Transmit[i].Timestamp, p.Receive[i].Timestamp
		if rx < tx {
			return nil, &NegativeLatencyError{Index: i, TransmitTS: tx, ReceiveTS: rx}
		}
		d := rx - tx
		if d < 0 {
			// rx >= tx，差值为负只可能是溢出回绕。
			return nil, &RangeError{Index: i, TransmitTS: tx, ReceiveTS: rx}
		}
		out[i] = d
	}
	return out, nil
}

// Analyze needs at least two events: p999 is undefined below that.
func Analyze(p correlate.Pair) (Report, error) {
	lat, err := Latencies(p)
	if err != nil {
		return Report{}, err
	}
	if len(lat) < 2 {
		return Report{}, &InsufficientDataError{Count: len(lat), Required: 2}
	}

	r := Report{Latencies: lat}
	if r.Mean, err = Mean(lat); err != nil {
		return Report{}, err
	}
	if r.Median, err = Median(lat); err != nil {
		return Report{}, err
	}
	if r.P999, err = Percentile999(lat); err != nil {
		return Report{}, err
	}
	return r, nil
}
