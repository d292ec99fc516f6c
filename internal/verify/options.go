package verify

import (
	"context"
	"fmt"

	"pktverify/internal/eventlog"
	"pktverify/internal/eventlog/filter"
	"pktverify/pkg/model"
)

// Options 是 CLI / HTTP 两个入口共用的字符串形式参数。
type Options struct {
	Format   string
	PcapUnit string
	Protocol string
	Port     uint16
	Table    string
}

func NewRequest(transmitLog, receiveLog string, opts Options) (Request, error) {
	format, err := eventlog.ParseFormat(opts.Format)
	if err != nil {
		return Request{}, err
	}
	unit, err := eventlog.ParseTimeUnit(opts.PcapUnit)
	if err != nil {
		return Request{}, err
	}
	proto, err := filter.ParseProtocol(opts.Protocol)
	if err != nil {
		return Request{}, err
	}
	if proto == 0 && opts.Port != 0 {
		return Request{}, fmt.Errorf("指定端口 %d 时必须同时指定协议（tcp / udp）", opts.Port)
	}
	return Request{
		TransmitLog: transmitLog,
		ReceiveLog:  receiveLog,
		Format:      format,
		Pcap:        eventlog.PcapOptions{Unit: unit, Protocol: proto, Port: opts.Port},
		Table:       opts.Table,
	}, nil
}

// Verifier 让 HTTP 层可以替换成假实现做测试。
type Verifier interface {
	Verify(ctx context.Context, req Request) model.Result
}

type Runner struct{}

func (Runner) Verify(ctx context.Context, req Request) model.Result {
	return Run(ctx, req)
}
