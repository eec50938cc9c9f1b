package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/dmitrijs2005/scpcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scpcatalog/internal/server/storage"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	objects  map[string]bool
	signErr  error
	existErr error
	signed   []string
}

func newFakeStore(names ...string) *fakeStore {
	f := &fakeStore{objects: map[string]bool{}}
	for _, n := range names {
		f.objects[n] = true
	}
	return f
}

func (f *fakeStore) Exists(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existErr != nil {
		return false, f.existErr
	}
	return f.objects[name], nil
}

func (f *fakeStore) PresignUpload(ctx context.Context, name, contentType string, size int64, ttl time.Duration) (storage.PresignedUpload, error) {
	return storage.PresignedUpload{
		URL:     "http://store/images/" + name + "?sig=put",
		Headers: map[string]string{"If-None-Match": "*", "Content-Type": contentType},
	}, nil
}

func (f *fakeStore) SignURL(ctx context.Context, name string, ttl time.Duration) (storage.SignedURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signErr != nil {
		return storage.SignedURL{}, f.signErr
	}
	f.signed = append(f.signed, name)
	return storage.SignedURL{URL: "http://store/images/" + name + "?sig=get"}, nil
}

var errStoreDown = errors.New("store down")

func discardLogger() logging.Logger {
	return logging.NewLogger("text", "error", io.Discard)
}

func newSQLiteDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.New(dbx.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(ctx, db))
	return db, rm
}
