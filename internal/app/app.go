// Package app runs the MCP server over stdio or streamable HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/wezterm-mcp-server/internal/constants"
	"github.com/codex-k8s/wezterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/wezterm-mcp-server/internal/http/health"
	"github.com/codex-k8s/wezterm-mcp-server/internal/timeutil"
)

// App controls the transport lifecycle.
type App struct {
	baseCtx         context.Context
	cfg             dsl.ServerConfig
	mcp             *mcp.Server
	server          *http.Server
	health          *health.Handler
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New prepares the transport described by serverCfg. A zero shutdownTimeout
// falls back to server.shutdown_timeout, then to 10s.
func New(baseCtx context.Context, serverCfg dsl.ServerConfig, server *mcp.Server, logger *slog.Logger, shutdownTimeout time.Duration) (*App, error) {
	if server == nil {
		return nil, fmt.Errorf("mcp server is nil")
	}
	if baseCtx == nil {
		return nil, fmt.Errorf("base context is nil")
	}
	if shutdownTimeout == 0 {
		shutdownTimeout = timeutil.ParseDurationOrDefault(serverCfg.ShutdownTimeout, 10*time.Second)
	}

	a := &App{
		baseCtx:         baseCtx,
		cfg:             serverCfg,
		mcp:             server,
		health:          health.New(),
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
	if serverCfg.Transport == constants.TransportHTTP {
		a.server = &http.Server{
			Addr:         serverCfg.HTTP.Listen,
			Handler:      a.Handler(),
			ReadTimeout:  timeutil.ParseDurationOrDefault(serverCfg.HTTP.ReadTimeout, 15*time.Second),
			WriteTimeout: timeutil.ParseDurationOrDefault(serverCfg.HTTP.WriteTimeout, 60*time.Second),
			IdleTimeout:  timeutil.ParseDurationOrDefault(serverCfg.HTTP.IdleTimeout, 60*time.Second),
		}
	}
	return a, nil
}

// Handler returns the HTTP routes: the MCP endpoint and the health checks.
func (a *App) Handler() http.Handler {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return a.mcp
	}, &mcp.StreamableHTTPOptions{
		Stateless: a.cfg.HTTP.Stateless,
	})

	mux := http.NewServeMux()
	mux.Handle(a.cfg.HTTP.Path, mcpHandler)
	a.health.Register(mux)
	return mux
}

// Run serves until ctx is cancelled or the transport fails.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		return a.runStdio(ctx)
	}
	return a.runHTTP(ctx)
}

func (a *App) runStdio(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("stdio server started")
	}
	err := a.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) runHTTP(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.health.SetReady()
		if a.logger != nil {
			a.logger.Info("http server started", "addr", a.server.Addr, "path", a.cfg.HTTP.Path)
		}
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		if a.logger != nil {
			a.logger.Info("shutdown requested")
		}
		return a.shutdown()
	case err := <-errCh:
		a.health.SetNotReady()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if a.logger != nil {
			a.logger.Error("http server error", "error", err)
		}
		return err
	}
}

func (a *App) shutdown() error {
	a.health.SetNotReady()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.baseCtx), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
