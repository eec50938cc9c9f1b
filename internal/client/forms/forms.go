// Package forms implements the create and edit flows: input validation,
// image naming, the in-progress guard and reconciling the list afterwards.
package forms

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/client/api"
	"github.com/dmitrijs2005/scpcatalog/internal/client/listview"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

// ErrBusy is returned when Submit or Save is called while one is running.
var ErrBusy = listview.ErrBusy

const (
	minTextLength = 10
	maxItemNumber = 9999

	msgImageUploadFailed = "Failed to upload image. Please try again or submit without an image."
)

// Creator is the part of the data service the create flow uses.
type Creator interface {
	Create(ctx context.Context, e models.Entry) (models.Entry, error)
	UploadImageObject(ctx context.Context, file api.ImageFile, name string) (api.UploadedImage, error)
}

// Updater is the part of the data service the edit flow uses.
type Updater interface {
	Update(ctx context.Context, e models.Entry, image *api.ImageFile) (models.Entry, error)
}

// FieldErrors maps a field name to a user-facing message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = f[n]
	}
	return strings.Join(parts, "; ")
}

// UserError carries a message meant for display and the failure behind it.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Err }

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// createImageName names an image uploaded by the create flow.
func createImageName(number string, now time.Time) string {
	return strings.ToLower(fmt.Sprintf("scp-%s-%d", number, now.UnixMilli()))
}

// editImageName names an image uploaded by the edit flow.
func editImageName(item string, now time.Time) string {
	return strings.ToLower(fmt.Sprintf("scp-%s-%d", nonAlnum.ReplaceAllString(item, "-"), now.UnixMilli()))
}
