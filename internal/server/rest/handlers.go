package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/dmitrijs2005/scpcatalog/internal/server/storage"
	"github.com/gorilla/mux"
)

// EntryService is the catalog surface the handlers depend on.
type EntryService interface {
	List(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id string) (models.Entry, error)
	Create(ctx context.Context, in models.Entry) (models.Entry, error)
	Update(ctx context.Context, id string, in models.Entry) (models.Entry, error)
	Delete(ctx context.Context, id string) error
}

// ImageService is the image surface the handlers depend on.
type ImageService interface {
	RequestUpload(ctx context.Context, name, contentType string, size int64) (storage.PresignedUpload, error)
	Sign(ctx context.Context, name string, ttl time.Duration) (storage.SignedURL, error)
}

// Handlers maps the REST surface onto the services.
type Handlers struct {
	entries EntryService
	images  ImageService
	logger  logging.Logger
}

func NewHandlers(entries EntryService, images ImageService, logger logging.Logger) *Handlers {
	return &Handlers{entries: entries, images: images, logger: logger}
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), op+" failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeError(w, status, msg)
}

func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	items, err := h.entries.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetEntry answers 404 for any lookup failure.
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	e, err := h.entries.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			h.logger.Warn(r.Context(), "get failed", "id", id, "error", err)
		}
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var in models.Entry
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	e, err := h.entries.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, []models.Entry{e})
}

func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var in models.Entry
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	e, err := h.entries.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, []models.Entry{e})
}

func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.entries.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, models.DeleteResult{Success: true, Message: msgDeleted})
}

func (h *Handlers) RequestUpload(w http.ResponseWriter, r *http.Request) {
	var in models.UploadRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	up, err := h.images.RequestUpload(r.Context(), in.Name, in.ContentType, in.Size)
	if err != nil {
		h.fail(w, r, "upload slot", err)
		return
	}
	writeJSON(w, http.StatusCreated, models.UploadSlot{
		Name:      in.Name,
		UploadURL: up.URL,
		Headers:   up.Headers,
		ExpiresAt: up.ExpiresAt,
	})
}

func (h *Handlers) SignImage(w http.ResponseWriter, r *http.Request) {
	var in models.SignRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
	}

	signed, err := h.images.Sign(r.Context(), mux.Vars(r)["name"], time.Duration(in.ExpiresInSeconds)*time.Second)
	if err != nil {
		h.fail(w, r, "sign", err)
		return
	}
	writeJSON(w, http.StatusOK, models.SignedImage{URL: signed.URL, ExpiresAt: signed.ExpiresAt})
}
