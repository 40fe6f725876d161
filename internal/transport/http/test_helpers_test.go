package http

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/okazakov/boardwire-server/internal/catalog"
	"github.com/okazakov/boardwire-server/internal/catalog/file"
	"github.com/okazakov/boardwire-server/internal/config"
	"github.com/okazakov/boardwire-server/internal/core"
)

// startTestServer spins up the full HTTP surface over a file-backed
// catalog in a temp dir.
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := file.New(filepath.Join(t.TempDir(), "quizzes.json"))
	return startTestServerWithStore(t, store)
}

func startTestServerWithStore(t *testing.T, store catalog.Store) *httptest.Server {
	t.Helper()

	logger := zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
	hub := core.NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	server := NewServer(hub, store, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}
