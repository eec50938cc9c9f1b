package rest

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_ErrorLogGoesThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	s := NewServer("127.0.0.1:0", http.NotFoundHandler(), logging.NewLogger("text", "info", &buf), time.Second)

	require.NotNil(t, s.httpServer.ErrorLog)
	s.httpServer.ErrorLog.Print("tls handshake error")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "tls handshake error")
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	s := NewServer("127.0.0.1:0", http.NotFoundHandler(), logging.NewLogger("text", "info", &buf), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
