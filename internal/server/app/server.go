package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pktverify/internal/server/api"
	"pktverify/internal/verify"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg Config) *Server {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewRouter(cfg, verify.Runner{}),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func NewRouter(cfg Config, v verify.Verifier) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	h := api.NewHandlers(v, cfg.BaseDir)
	router.GET("/healthz", h.Health)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/verify", h.Verify)
	}
	return router
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
