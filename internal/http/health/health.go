// Package health serves liveness and readiness checks for the HTTP transport.
package health

import (
	"net/http"
	"sync/atomic"
)

// Handler tracks readiness.
type Handler struct {
	ready atomic.Bool
}

// New returns a handler that starts not ready.
func New() *Handler {
	return &Handler{}
}

// SetReady marks the server as accepting MCP traffic.
func (h *Handler) SetReady() {
	h.ready.Store(true)
}

// SetNotReady marks the server as draining.
func (h *Handler) SetNotReady() {
	h.ready.Store(false)
}

// Register mounts /healthz and /readyz on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness checks.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz handles readiness checks.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
