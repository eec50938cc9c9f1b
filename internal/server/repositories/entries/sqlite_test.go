package entries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/dmitrijs2005/scpcatalog/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	fsys, err := migrations.SQLite()
	require.NoError(t, err)
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	require.NoError(t, err)
	_, err = p.Up(context.Background())
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupSQLite(t))

	second := models.Entry{ID: "b", Item: "SCP-10", Class: models.ClassKeter, Description: "desc b", Containment: "cont b", CreatedAt: 2}
	first := models.Entry{ID: "a", Item: "SCP-9", Class: models.ClassSafe, Description: "desc a", Containment: "cont a", CreatedAt: 1}
	require.NoError(t, repo.Create(ctx, &second))
	require.NoError(t, repo.Create(ctx, &first))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID, "list follows creation time")
	assert.Equal(t, "b", all[1].ID)

	first.Description = "updated description"
	first.Image = "http://signed"
	first.ImageKey = "scp-9-1"
	ok, err := repo.Update(ctx, &first)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	ok, err = repo.Update(ctx, &models.Entry{ID: "nope", Item: "x", Class: "Safe", Description: "x", Containment: "x"})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Delete(ctx, "b"))
	assert.ErrorIs(t, repo.Delete(ctx, "b"), common.ErrorNotFound)

	_, err = repo.GetByID(ctx, "b")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_DuplicateItemsAllowed(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupSQLite(t))

	require.NoError(t, repo.Create(ctx, &models.Entry{ID: "1", Item: "SCP-1", Class: "Safe", Description: "d", Containment: "c", CreatedAt: 1}))
	require.NoError(t, repo.Create(ctx, &models.Entry{ID: "2", Item: "SCP-1", Class: "Safe", Description: "d", Containment: "c", CreatedAt: 2}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
