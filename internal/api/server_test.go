package api_test

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quarto/internal/api"
	"github.com/mcoot/quarto/internal/testutil"
)

func TestServerConfigFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		port    string
		want    string
		wantErr bool
	}{
		{name: "defaults", want: "127.0.0.1:8080"},
		{name: "overrides", host: "0.0.0.0", port: "9000", want: "0.0.0.0:9000"},
		{name: "ipv6 host", host: "::1", port: "9000", want: "[::1]:9000"},
		{name: "non-numeric port", port: "http", wantErr: true},
		{name: "port out of range", port: "70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QUARTO_HOST", tt.host)
			if tt.host == "" {
				require.NoError(t, os.Unsetenv("QUARTO_HOST"))
			}
			t.Setenv("QUARTO_PORT", tt.port)

			cfg, err := api.ServerConfigFromEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Addr())
		})
	}
}

func TestServerServesUntilCancelled(t *testing.T) {
	ts := newTestServer(t)
	ts.createGame(t, "GAME01", nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := api.NewServer(ts.handler, api.DefaultServerConfig(), testutil.NopLogger())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()

	resp, err := http.Get(base + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// An open event stream must not hold up shutdown
	stream, err := http.Get(base + "/api/v1/games/GAME01/events")
	require.NoError(t, err)
	defer func() { _ = stream.Body.Close() }()
	line, err := bufio.NewReader(stream.Body).ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "event: connected"), line)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
