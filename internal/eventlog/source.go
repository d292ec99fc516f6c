package eventlog

import (
	"context"
	"fmt"
	"strings"

	"pktverify/pkg/model"
)

type Format string

const (
	FormatText   Format = "text"
	FormatPcap   Format = "pcap"
	FormatSQLite Format = "sqlite"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatPcap, FormatSQLite:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("不支持的日志格式：%s", s)
	}
}

// Source 描述一份待读取的事件日志。
type Source struct {
	Path   string
	Format Format
	Pcap   PcapOptions
	Table  string
}

// Load 按格式读取整份日志。
func Load(ctx context.Context, src Source) ([]model.Event, error) {
	switch src.Format {
	case FormatText, "":
		return ReadFile(src.Path)
	case FormatPcap:
		return ReadPcap(src.Path, src.Pcap)
	case FormatSQLite:
		return ReadSQLite(ctx, src.Path, src.Table)
	default:
		return nil, fmt.Errorf("不支持的日志格式：%s", src.Format)
	}
}
