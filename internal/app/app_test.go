package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/wezterm-mcp-server/internal/dsl"
)

func httpConfig(listen string) dsl.ServerConfig {
	return dsl.ServerConfig{
		Name:      "wezterm-mcp-server",
		Version:   "test",
		Transport: "http",
		HTTP:      dsl.HTTPConfig{Listen: listen, Path: "/mcp"},
	}
}

func newServer() *mcp.Server {
	return mcp.NewServer(&mcp.Implementation{Name: "wezterm-mcp-server", Version: "test"}, nil)
}

func TestNewRejectsNil(t *testing.T) {
	_, err := New(context.Background(), httpConfig(""), nil, nil, 0)
	require.Error(t, err)
}

func TestShutdownTimeoutFallback(t *testing.T) {
	cfg := httpConfig("")
	cfg.ShutdownTimeout = "3s"
	a, err := New(context.Background(), cfg, newServer(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, a.shutdownTimeout)

	a, err = New(context.Background(), cfg, newServer(), nil, time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, a.shutdownTimeout)
}

func TestStdioHasNoHTTPServer(t *testing.T) {
	cfg := httpConfig("")
	cfg.Transport = "stdio"
	a, err := New(context.Background(), cfg, newServer(), nil, 0)
	require.NoError(t, err)
	assert.Nil(t, a.server)
}

func TestHandlerRoutes(t *testing.T) {
	a, err := New(context.Background(), httpConfig(""), newServer(), nil, 0)
	require.NoError(t, err)
	ts := httptest.NewServer(a.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	require.NoError(t, err)
	defer session.Close()
	require.NoError(t, session.Ping(ctx, nil))
}

func TestRunHTTPShutsDownOnCancel(t *testing.T) {
	a, err := New(context.Background(), httpConfig("127.0.0.1:0"), newServer(), nil, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		a.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		return rec.Code == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
