package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/scpcatalog/internal/client/search"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	entries   []models.Entry
	fetchErr  error
	deleteErr error
	deleted   []string
	fetches   int
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]models.Entry, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]models.Entry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeSource) Delete(ctx context.Context, id string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return true, nil
}

func loadedEngine(t *testing.T, n int) (*Engine, *fakeSource, *search.State) {
	t.Helper()
	src := &fakeSource{entries: numbered(n)}
	state := search.NewState()
	e, err := NewEngine(src, state)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	require.NoError(t, e.Load(context.Background()))
	return e, src, state
}

func TestNewEngine_RequiresSearchState(t *testing.T) {
	_, err := NewEngine(&fakeSource{}, nil)
	require.ErrorIs(t, err, search.ErrNotAttached)

	_, err = NewEngineFromContext(context.Background(), &fakeSource{})
	require.ErrorIs(t, err, search.ErrNotAttached)

	ctx := search.WithState(context.Background(), search.NewState())
	e, err := NewEngineFromContext(ctx, &fakeSource{})
	require.NoError(t, err)
	e.Close()
}

func TestEngine_LoadError(t *testing.T) {
	boom := errors.New("boom")
	e, err := NewEngine(&fakeSource{fetchErr: boom}, search.NewState())
	require.NoError(t, err)

	require.ErrorIs(t, e.Load(context.Background()), boom)
	assert.Empty(t, e.Entries())
}

func TestEngine_SetPage(t *testing.T) {
	e, _, _ := loadedEngine(t, 12)
	var hooked []int
	e.OnPageChange = func(p int) { hooked = append(hooked, p) }

	assert.False(t, e.SetPage(0))
	assert.False(t, e.SetPage(4))
	assert.Equal(t, 1, e.Page())
	assert.Empty(t, hooked)

	assert.True(t, e.SetPage(3))
	v, err := e.View()
	require.NoError(t, err)
	assert.Len(t, v.Entries, 2)
	assert.Equal(t, 3, v.TotalPages)

	assert.False(t, e.NextPage())
	assert.True(t, e.PrevPage())
	assert.Equal(t, []int{3, 2}, hooked)
}

func TestEngine_QueryAndSortKeepPage(t *testing.T) {
	e, _, state := loadedEngine(t, 12)

	require.True(t, e.SetPage(2))
	require.NoError(t, e.SetSort(SortItem))
	assert.Equal(t, 2, e.Page())

	require.NoError(t, state.SetQuery("scp"))
	assert.Equal(t, 2, e.Page())

	assert.ErrorIs(t, e.SetSort("date"), ErrUnknownSort)
	assert.Equal(t, SortItem, e.SortKey())
}

func TestEngine_QueryClampsPageToMatches(t *testing.T) {
	e, _, state := loadedEngine(t, 12)
	var hooked []int
	e.OnPageChange = func(p int) { hooked = append(hooked, p) }

	require.True(t, e.SetPage(3))
	require.NoError(t, state.SetQuery("SCP-12"))
	assert.Equal(t, 1, e.Page())

	v, err := e.View()
	require.NoError(t, err)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, []string{"SCP-12"}, items(v))

	assert.False(t, e.NextPage(), "a single page has no next page")

	require.NoError(t, state.SetQuery(""))
	assert.Equal(t, 1, e.Page(), "clearing the query does not restore the old page")
	assert.True(t, e.NextPage())
	assert.Equal(t, []int{3, 2}, hooked)
}

func TestEngine_ViewUsesQuery(t *testing.T) {
	e, _, state := loadedEngine(t, 12)

	require.NoError(t, state.SetQuery("SCP-12"))
	v, err := e.View()
	require.NoError(t, err)
	assert.Equal(t, []string{"SCP-12"}, items(v))
	assert.Equal(t, 1, v.TotalPages)
}

func TestEngine_EditorSnapshotDoesNotAlias(t *testing.T) {
	e, _, _ := loadedEngine(t, 3)

	snap, err := e.OpenEditor("id-2")
	require.NoError(t, err)
	snap.Description = "changed locally"

	open, ok := e.Editing()
	require.True(t, ok)
	assert.Equal(t, "description 1", open.Description)
	assert.Equal(t, "description 1", e.Entries()[1].Description)

	_, err = e.OpenEditor("nope")
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestEngine_TwoStepDelete(t *testing.T) {
	e, src, _ := loadedEngine(t, 4)
	ctx := context.Background()

	_, err := e.RequestDelete(ctx)
	require.ErrorIs(t, err, ErrNoEditor)

	_, err = e.OpenEditor("id-3")
	require.NoError(t, err)

	deleted, err := e.RequestDelete(ctx)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, e.DeleteArmed())
	assert.Len(t, e.Entries(), 4)

	deleted, err = e.RequestDelete(ctx)
	require.NoError(t, err)
	assert.True(t, deleted)

	left := e.Entries()
	require.Len(t, left, 3)
	for _, entry := range left {
		assert.NotEqual(t, "id-3", entry.ID)
	}
	assert.Equal(t, []string{"id-3"}, src.deleted)
	assert.Equal(t, 1, src.fetches, "no refetch after delete")

	_, open := e.Editing()
	assert.False(t, open)
}

func TestEngine_CancelAndCloseDisarm(t *testing.T) {
	e, src, _ := loadedEngine(t, 2)
	ctx := context.Background()

	_, err := e.OpenEditor("id-1")
	require.NoError(t, err)

	_, _ = e.RequestDelete(ctx)
	e.CancelModal()
	assert.False(t, e.DeleteArmed())

	deleted, err := e.RequestDelete(ctx)
	require.NoError(t, err)
	assert.False(t, deleted, "first call after cancel only arms")

	e.CloseModal()
	assert.False(t, e.DeleteArmed())
	_, open := e.Editing()
	assert.False(t, open)
	assert.Empty(t, src.deleted)
}

func TestEngine_DeleteFailureKeepsEntry(t *testing.T) {
	e, src, _ := loadedEngine(t, 2)
	src.deleteErr = errors.New("server error")
	ctx := context.Background()

	_, err := e.OpenEditor("id-1")
	require.NoError(t, err)
	_, _ = e.RequestDelete(ctx)

	_, err = e.RequestDelete(ctx)
	require.Error(t, err)
	assert.Len(t, e.Entries(), 2)
	assert.False(t, e.DeleteArmed())
	_, open := e.Editing()
	assert.True(t, open)
}

func TestEngine_ApplyUpdateReplacesInPlace(t *testing.T) {
	e, src, _ := loadedEngine(t, 3)

	updated := e.Entries()[1]
	updated.Class = models.ClassSafe
	updated.Description = "patched"
	assert.True(t, e.ApplyUpdate(updated))

	got := e.Entries()
	assert.Equal(t, "patched", got[1].Description)
	assert.Equal(t, "id-2", got[1].ID)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, src.fetches)

	assert.False(t, e.ApplyUpdate(models.Entry{ID: "ghost"}))
}
