package forms

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/client/api"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

// CreateForm collects a new entry. The item is entered as a bare number and
// submitted as prefix + number.
type CreateForm struct {
	ItemNumber  string
	Class       string
	Description string
	Containment string
	Image       *api.ImageFile

	mu         sync.Mutex
	svc        Creator
	prefix     string
	now        func() time.Time
	submitting bool
}

func NewCreateForm(svc Creator, prefix string) *CreateForm {
	if prefix == "" {
		prefix = models.DefaultItemPrefix
	}
	return &CreateForm{svc: svc, prefix: prefix, now: time.Now}
}

// Validate checks every field and returns the failures by field name.
func (f *CreateForm) Validate() FieldErrors {
	errs := FieldErrors{}

	number := strings.TrimSpace(f.ItemNumber)
	switch n, err := strconv.Atoi(number); {
	case number == "":
		errs["item"] = "Item number is required"
	case strings.Trim(number, "0123456789") != "":
		errs["item"] = "Item number must contain digits only"
	case err != nil || n < 1 || n > maxItemNumber:
		errs["item"] = "Item number must be between 1 and 9999"
	}

	if strings.TrimSpace(f.Class) == "" {
		errs["class"] = "Class is required"
	} else if _, ok := models.ParseClass(f.Class); !ok {
		errs["class"] = "Class must be Safe, Euclid or Keter"
	}

	checkText(errs, "description", "Description", f.Description)
	checkText(errs, "containment", "Containment procedures", f.Containment)

	return errs
}

func checkText(errs FieldErrors, key, label, v string) {
	switch n := len([]rune(strings.TrimSpace(v))); {
	case n == 0:
		errs[key] = label + " is required"
	case n < minTextLength:
		errs[key] = label + " must be at least 10 characters"
	}
}

// Submit validates, uploads the optional image, creates the entry and resets
// the form. A second call while one is running fails with ErrBusy.
func (f *CreateForm) Submit(ctx context.Context) (models.Entry, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return models.Entry{}, ErrBusy
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if errs := f.Validate(); len(errs) > 0 {
		return models.Entry{}, errs
	}

	number := strings.TrimSpace(f.ItemNumber)
	class, _ := models.ParseClass(f.Class)
	entry := models.Entry{
		Item:        f.prefix + number,
		Class:       class,
		Description: strings.TrimSpace(f.Description),
		Containment: strings.TrimSpace(f.Containment),
	}

	if f.Image != nil {
		uploaded, err := f.svc.UploadImageObject(ctx, *f.Image, createImageName(number, f.now()))
		if err != nil {
			return models.Entry{}, &UserError{Message: msgImageUploadFailed, Err: err}
		}
		entry.Image, entry.ImageKey = uploaded.URL, uploaded.Name
	}

	created, err := f.svc.Create(ctx, entry)
	if err != nil {
		return models.Entry{}, err
	}

	f.Reset()
	return created, nil
}

// Reset clears every field.
func (f *CreateForm) Reset() {
	f.ItemNumber = ""
	f.Class = ""
	f.Description = ""
	f.Containment = ""
	f.Image = nil
}
