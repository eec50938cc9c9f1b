package forms

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/client/api"
	"github.com/dmitrijs2005/scpcatalog/internal/client/listview"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

// EditFlow edits the snapshot the engine opened for one entry.
type EditFlow struct {
	// Draft starts as the snapshot and receives the user's edits.
	Draft models.Entry
	// Image, when set, replaces the entry image on Save.
	Image *api.ImageFile

	mu     sync.Mutex
	svc    Updater
	engine *listview.Engine
	now    func() time.Time
	saving bool
}

// NewEditFlow opens the editor for id.
func NewEditFlow(svc Updater, engine *listview.Engine, id string) (*EditFlow, error) {
	snapshot, err := engine.OpenEditor(id)
	if err != nil {
		return nil, err
	}
	return &EditFlow{Draft: snapshot, svc: svc, engine: engine, now: time.Now}, nil
}

// Save sends the draft, patches the list in place and closes the editor.
// On failure the editor stays open with the draft intact.
func (f *EditFlow) Save(ctx context.Context) (models.Entry, error) {
	f.mu.Lock()
	if f.saving {
		f.mu.Unlock()
		return models.Entry{}, ErrBusy
	}
	f.saving = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.saving = false
		f.mu.Unlock()
	}()

	var image *api.ImageFile
	if f.Image != nil {
		img := *f.Image
		img.Name = editImageName(f.Draft.Item, f.now())
		image = &img
	}

	updated, err := f.svc.Update(ctx, f.Draft, image)
	if err != nil {
		return models.Entry{}, err
	}

	f.engine.ApplyUpdate(updated)
	f.engine.CloseModal()
	f.Image = nil
	return updated, nil
}

// Delete is the two-step delete: the first call arms, the second deletes.
func (f *EditFlow) Delete(ctx context.Context) (bool, error) {
	return f.engine.RequestDelete(ctx)
}

// Cancel disarms a pending delete.
func (f *EditFlow) Cancel() {
	f.engine.CancelModal()
}

// Close discards the draft.
func (f *EditFlow) Close() {
	f.engine.CloseModal()
}
