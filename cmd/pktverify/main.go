package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"

	"pktverify/internal/client/app"
	"pktverify/internal/logging"
	"pktverify/internal/verify"
)

type runArgs struct {
	TransmitLog string `arg:"-t,--transmit-log" help:"发送端日志路径"`
	ReceiveLog  string `arg:"-r,--receive-log" help:"接收端日志路径"`
	Format      string `arg:"-f,--format" default:"text" help:"日志格式：text / pcap / sqlite"`
	Output      string `arg:"-o,--output" default:"json" help:"输出格式：json / table"`
	PcapUnit    string `arg:"--pcap-unit" default:"us" help:"pcap 时间戳单位：ns / us / ms"`
	Protocol    string `arg:"--protocol" help:"pcap BPF 过滤协议：tcp / udp，为空不过滤"`
	Port        uint16 `arg:"--port" help:"pcap BPF 过滤端口，0 表示不限"`
	Table       string `arg:"--table" default:"events" help:"sqlite 事件表名"`
	LogLevel    string `arg:"--log-level" default:"warn" help:"日志级别"`
	ArgsFile    string `arg:"positional" help:"Ansible 模块参数文件（JSON），给出时忽略其余路径参数"`
}

func (runArgs) Description() string {
	return "比对发送端与接收端事件日志，校验包数与包大小一一对应并统计时延（mean / median / p99.9）。"
}

func main() {
	var args runArgs
	p := arg.MustParse(&args)
	if args.ArgsFile == "" && (args.TransmitLog == "" || args.ReceiveLog == "") {
		p.WriteUsage(os.Stderr)
		os.Exit(2)
	}

	// stdout 只放结果 JSON，日志走 stderr。
	logging.Init(os.Stderr, args.ArgsFile != "", logging.ParseLevel(args.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := app.Run(ctx, app.Config{
		TransmitLog: args.TransmitLog,
		ReceiveLog:  args.ReceiveLog,
		Output:      args.Output,
		ArgsFile:    args.ArgsFile,
		Options: verify.Options{
			Format:   args.Format,
			PcapUnit: args.PcapUnit,
			Protocol: args.Protocol,
			Port:     args.Port,
			Table:    args.Table,
		},
	}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pktverify: %v\n", err)
		os.Exit(2)
	}
	if !res.Success {
		os.Exit(1)
	}
}
