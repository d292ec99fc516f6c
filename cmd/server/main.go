package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pktverify/internal/logging"
	"pktverify/internal/server/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("读取配置失败", "error", err)
		os.Exit(2)
	}
	logging.Init(os.Stderr, false, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := app.NewServer(cfg)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server 监听", "addr", cfg.ListenAddr, "base_dir", cfg.BaseDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server 运行失败", "error", err)
		os.Exit(1)
	}
}
