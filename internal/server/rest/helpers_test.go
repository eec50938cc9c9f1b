package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/dmitrijs2005/scpcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scpcatalog/internal/server/services"
	"github.com/dmitrijs2005/scpcatalog/internal/server/storage"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string]bool
}

func (m *memStore) Exists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[name], nil
}

func (m *memStore) PresignUpload(ctx context.Context, name, contentType string, size int64, ttl time.Duration) (storage.PresignedUpload, error) {
	return storage.PresignedUpload{
		URL:       "http://store/images/" + name + "?sig=put",
		Headers:   map[string]string{"If-None-Match": "*", "Content-Type": contentType},
		ExpiresAt: time.Unix(1_700_000_900, 0).UTC(),
	}, nil
}

func (m *memStore) SignURL(ctx context.Context, name string, ttl time.Duration) (storage.SignedURL, error) {
	return storage.SignedURL{
		URL:       "http://store/images/" + name + "?ttl=" + ttl.String(),
		ExpiresAt: time.Unix(1_700_000_000, 0).UTC(),
	}, nil
}

type testEnv struct {
	handler http.Handler
	store   *memStore
}

func newTestEnv(t *testing.T, secret string) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "rest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.New(dbx.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(ctx, db))

	logger := logging.NewLogger("text", "error", io.Discard)
	store := &memStore{objects: map[string]bool{}}

	h := NewRouter(RouterConfig{
		Handlers: NewHandlers(
			services.NewEntryService(db, rm, store, logger),
			services.NewImageService(store, logger, 5<<20, 15*time.Minute),
			logger,
		),
		Health:      NewHealthHandler(db),
		Metrics:     NewMetrics(),
		Logger:      logger,
		SecretKey:   secret,
		CORSOrigins: "*",
	})
	return &testEnv{handler: h, store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
