// Package status serves a small read-only HTTP view of a running instance.
package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bft-labs/foldership/internal/app"
	"github.com/bft-labs/foldership/internal/ports"
)

// Provider exposes the data served by the status endpoints.
type Provider interface {
	Root() string
	Lifecycle() string
	Loop() string
	Stats() app.Snapshot
}

// Report is the body of GET /status.
type Report struct {
	Root      string       `json:"root"`
	Lifecycle string       `json:"lifecycle"`
	Loop      string       `json:"loop"`
	Stats     app.Snapshot `json:"stats"`
}

// Server is the status HTTP server.
type Server struct {
	router   *gin.Engine
	srv      *http.Server
	listener net.Listener
	logger   ports.Logger
	done     chan struct{}
}

// NewServer builds the router. Call Start to listen on addr.
func NewServer(addr string, provider Provider, logger ports.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, Report{
			Root:      provider.Root(),
			Lifecycle: provider.Lifecycle(),
			Loop:      provider.Loop(),
			Stats:     provider.Stats(),
		})
	})

	return &Server{
		router: router,
		srv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Handler returns the underlying router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.listener = ln
	s.logger.Info("status server listening", ports.String("addr", ln.Addr().String()))

	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server stopped", ports.Err(err))
		}
	}()
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}
