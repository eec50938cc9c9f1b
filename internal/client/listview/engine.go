// Package listview keeps the fetched entry list in memory and derives the
// sorted, filtered and paginated page shown to the user. It also owns the
// editor snapshot and the two-step delete confirmation.
package listview

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/scpcatalog/internal/client/search"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

var (
	// ErrBusy is returned when a flow is started while another is in progress.
	ErrBusy        = errors.New("operation already in progress")
	ErrNoEditor    = errors.New("no entry is open for editing")
	ErrUnknownID   = errors.New("entry is not in the list")
	ErrUnknownSort = errors.New("unknown sort key")
)

// DataSource is the part of the data service the engine drives.
type DataSource interface {
	FetchAll(ctx context.Context) ([]models.Entry, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Engine struct {
	mu          sync.Mutex
	source      DataSource
	search      *search.State
	unsubscribe func()

	entries []models.Entry
	sortKey SortKey
	page    int
	busy    bool

	editor      *models.Entry
	deleteArmed bool

	// OnPageChange is called with the new page after a successful page change.
	OnPageChange func(page int)
}

// NewEngine binds the engine to state. A nil state yields search.ErrNotAttached.
func NewEngine(source DataSource, state *search.State) (*Engine, error) {
	e := &Engine{source: source, search: state, sortKey: SortNone, page: 1}

	unsubscribe, err := state.Subscribe(func(query string) {
		e.mu.Lock()
		e.page = e.clampLocked(e.page, query)
		e.mu.Unlock()
	})
	if err != nil {
		return nil, err
	}
	e.unsubscribe = unsubscribe
	return e, nil
}

// NewEngineFromContext uses the State attached to ctx with search.WithState.
func NewEngineFromContext(ctx context.Context, source DataSource) (*Engine, error) {
	state, err := search.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewEngine(source, state)
}

// Close detaches the engine from its search state.
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
}

func (e *Engine) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return ErrBusy
	}
	e.busy = true
	return nil
}

func (e *Engine) end() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

// Load fetches the full list once and resets the page.
func (e *Engine) Load(ctx context.Context) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.end()

	entries, err := e.source.FetchAll(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.entries = entries
	e.page = 1
	e.mu.Unlock()
	return nil
}

// Entries returns a copy of the in-memory list in fetch order.
func (e *Engine) Entries() []models.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// View derives the current page.
func (e *Engine) View() (View, error) {
	query, err := e.search.Query()
	if err != nil {
		return View{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	v := Derive(e.entries, e.sortKey, query, e.page)
	e.page = v.Page
	return v, nil
}

func (e *Engine) SortKey() SortKey {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortKey
}

// SetSort changes the order. The page number is kept.
func (e *Engine) SetSort(key SortKey) error {
	switch key {
	case SortNone, SortItem, SortClass:
	default:
		return ErrUnknownSort
	}
	e.mu.Lock()
	e.sortKey = key
	e.mu.Unlock()
	return nil
}

// clampLocked limits page to the pages query leaves. Callers hold e.mu.
func (e *Engine) clampLocked(page int, query string) int {
	last := max(totalPages(len(filterEntries(e.entries, query))), 1)
	return min(max(page, 1), last)
}

// SetPage moves to page k. A page outside [1, TotalPages] leaves the state
// unchanged and returns false.
func (e *Engine) SetPage(k int) bool {
	query, err := e.search.Query()
	if err != nil {
		return false
	}

	e.mu.Lock()
	total := totalPages(len(filterEntries(e.entries, query)))
	if k < 1 || k > total {
		e.mu.Unlock()
		return false
	}
	changed := k != e.clampLocked(e.page, query)
	e.page = k
	hook := e.OnPageChange
	e.mu.Unlock()

	if changed && hook != nil {
		hook(k)
	}
	return true
}

// Page is the page View would show, so a delete that empties the last page
// moves it back.
func (e *Engine) Page() int {
	query, _ := e.search.Query()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clampLocked(e.page, query)
}

func (e *Engine) NextPage() bool { return e.SetPage(e.Page() + 1) }
func (e *Engine) PrevPage() bool { return e.SetPage(e.Page() - 1) }

// OpenEditor snapshots the entry with id. Edits to the snapshot do not touch
// the list until ApplyUpdate.
func (e *Engine) OpenEditor(id string) (models.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, entry := range e.entries {
		if entry.ID == id {
			snapshot := entry
			e.editor = &snapshot
			e.deleteArmed = false
			return snapshot, nil
		}
	}
	return models.Entry{}, ErrUnknownID
}

// Editing returns the open snapshot, if any.
func (e *Engine) Editing() (models.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editor == nil {
		return models.Entry{}, false
	}
	return *e.editor, true
}

func (e *Engine) DeleteArmed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteArmed
}

// RequestDelete arms the confirmation on the first call and deletes the
// open entry on the second. deleted reports whether the entry was removed.
func (e *Engine) RequestDelete(ctx context.Context) (deleted bool, err error) {
	e.mu.Lock()
	if e.editor == nil {
		e.mu.Unlock()
		return false, ErrNoEditor
	}
	if !e.deleteArmed {
		e.deleteArmed = true
		e.mu.Unlock()
		return false, nil
	}
	id := e.editor.ID
	e.mu.Unlock()

	if err := e.begin(); err != nil {
		return false, err
	}
	defer e.end()

	if _, err := e.source.Delete(ctx, id); err != nil {
		e.mu.Lock()
		e.deleteArmed = false
		e.mu.Unlock()
		return false, err
	}

	e.ApplyDelete(id)
	return true, nil
}

// CancelModal disarms a pending delete and keeps the editor open.
func (e *Engine) CancelModal() {
	e.mu.Lock()
	e.deleteArmed = false
	e.mu.Unlock()
}

// CloseModal disarms a pending delete and discards the snapshot.
func (e *Engine) CloseModal() {
	e.mu.Lock()
	e.deleteArmed = false
	e.editor = nil
	e.mu.Unlock()
}

// ApplyUpdate replaces the entry with the same id in place.
func (e *Engine) ApplyUpdate(updated models.Entry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.entries {
		if e.entries[i].ID == updated.ID {
			e.entries[i] = updated
			return true
		}
	}
	return false
}

// ApplyDelete removes the entry with id and closes its editor.
func (e *Engine) ApplyDelete(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := make([]models.Entry, 0, len(e.entries))
	for _, entry := range e.entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	e.entries = kept

	if e.editor != nil && e.editor.ID == id {
		e.editor = nil
		e.deleteArmed = false
	}
}
