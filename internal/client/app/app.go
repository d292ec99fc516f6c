package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"pktverify/internal/verify"
	"pktverify/pkg/model"
)

// Run 执行一次比对并把结果写到 w。返回的 error 只表示参数/输出问题，
// 校验不通过体现在 Result.Success 上。
func Run(ctx context.Context, cfg Config, w io.Writer) (model.Result, error) {
	if cfg.ArgsFile != "" {
		return runModule(ctx, cfg, w)
	}

	req, err := verify.NewRequest(cfg.TransmitLog, cfg.ReceiveLog, cfg.Options)
	if err != nil {
		return model.Result{}, fmt.Errorf("参数非法：%w", err)
	}
	slog.Debug("开始比对", "transmit_log", req.TransmitLog, "receive_log", req.ReceiveLog, "format", req.Format)
	res := verify.Run(ctx, req)
	if !res.Success {
		slog.Info("校验失败", "error", res.Error)
	}

	switch cfg.Output {
	case "table":
		renderTable(w, res)
		return res, nil
	case "json", "":
		return res, writeJSON(w, res)
	default:
		return res, fmt.Errorf("不支持的输出格式：%s", cfg.Output)
	}
}

func runModule(ctx context.Context, cfg Config, w io.Writer) (model.Result, error) {
	args, err := readModuleArgs(cfg.ArgsFile)
	if err != nil {
		res := model.Failed(err.Error())
		return res, writeJSON(w, model.Envelope(res))
	}
	opts := cfg.Options
	if args.Format != "" {
		opts.Format = args.Format
	}
	req, err := verify.NewRequest(args.TransmitLog, args.ReceiveLog, opts)
	if err != nil {
		res := model.Failed(err.Error())
		return res, writeJSON(w, model.Envelope(res))
	}
	res := verify.Run(ctx, req)
	return res, writeJSON(w, model.Envelope(res))
}

func readModuleArgs(path string) (model.ModuleArgs, error) {
	var args model.ModuleArgs
	b, err := os.ReadFile(path)
	if err != nil {
		return args, fmt.Errorf("读取模块参数失败：%w", err)
	}
	if err := json.Unmarshal(b, &args); err != nil {
		return args, fmt.Errorf("解析模块参数 JSON 失败：%w", err)
	}
	return args, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("输出 JSON 失败：%w", err)
	}
	return nil
}

func renderTable(w io.Writer, res model.Result) {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetRowLine(false)

	if !res.Success || res.Report == nil {
		t.SetHeader([]string{"Result", "Error"})
		t.Append([]string{"FAILED", res.Error})
		t.Render()
		return
	}

	r := res.Report
	t.SetHeader([]string{"Packets", "Mean", "Median", "P99.9"})
	t.Append([]string{
		strconv.Itoa(r.PacketCount),
		formatFloat(r.MeanLatency),
		formatFloat(r.MedianLatency),
		formatFloat(r.P999Latency),
	})
	t.Render()

	lt := tablewriter.NewWriter(w)
	lt.SetAutoWrapText(false)
	lt.SetHeader([]string{"Index", "Latency"})
	for i, l := range r.Latencies {
		lt.Append([]string{strconv.Itoa(i), strconv.FormatInt(l, 10)})
	}
	lt.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
