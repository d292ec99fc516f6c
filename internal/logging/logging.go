package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Init 设置默认 slog logger。stdout 承载结果 JSON 时日志走 w（通常是 stderr），
// json 为 true 时输出 JSON 行，方便自动化平台收集。
func Init(w io.Writer, json bool, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

// ParseLevel 未知字符串按 info 处理。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
