// Package verify wires the reader, checker and analyzer into one call and
// flattens whatever goes wrong into the result payload.
package verify

import (
	"context"
	"errors"

	"pktverify/internal/correlate"
	"pktverify/internal/eventlog"
	"pktverify/internal/latency"
	"pktverify/pkg/model"
)

var (
	ErrMissingTransmitLog = errors.New("missing required arguments: transmit_log")
	ErrMissingReceiveLog  = errors.New("missing required arguments: receive_log")
)

type Request struct {
	TransmitLog string
	ReceiveLog  string
	Format      eventlog.Format
	Pcap        eventlog.PcapOptions
	Table       string
}

func (r Request) source(path string) eventlog.Source {
	return eventlog.Source{Path: path, Format: r.Format, Pcap: r.Pcap, Table: r.Table}
}

// Compare 依次读发送端、接收端日志，校验一一对应后计算时延。任何一步失败立即返回。
func Compare(ctx context.Context, req Request) (model.Report, error) {
	if req.TransmitLog == "" {
		return model.Report{}, ErrMissingTransmitLog
	}
	if req.ReceiveLog == "" {
		return model.Report{}, ErrMissingReceiveLog
	}

	tx, err := eventlog.Load(ctx, req.source(req.TransmitLog))
	if err != nil {
		return model.Report{}, err
	}
	rx, err := eventlog.Load(ctx, req.source(req.ReceiveLog))
	if err != nil {
		return model.Report{}, err
	}

	pair, err := correlate.Check(tx, rx)
	if err != nil {
		return model.Report{}, err
	}
	rep, err := latency.Analyze(pair)
	if err != nil {
		return model.Report{}, err
	}

	return model.Report{
		PacketCount:   pair.Len(),
		MeanLatency:   rep.Mean,
		MedianLatency: rep.Median,
		P999Latency:   rep.P999,
		Latencies:     rep.Latencies,
	}, nil
}

// Run 是对外的唯一入口：错误统一压成 {"error": "..."}。
func Run(ctx context.Context, req Request) model.Result {
	rep, err := Compare(ctx, req)
	if err != nil {
		return model.Failed(err.Error())
	}
	return model.Succeeded(rep)
}
