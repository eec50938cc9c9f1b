package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/dmitrijs2005/scpcatalog/internal/server/storage"
)

var objectNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,199}$`)

// ImageService hands out no-overwrite upload slots and signed read URLs.
type ImageService struct {
	store     storage.ObjectStore
	logger    logging.Logger
	maxSize   int64
	uploadTTL time.Duration
}

func NewImageService(store storage.ObjectStore, logger logging.Logger, maxSize int64, uploadTTL time.Duration) *ImageService {
	return &ImageService{store: store, logger: logger, maxSize: maxSize, uploadTTL: uploadTTL}
}

// RequestUpload validates the upload and presigns a PUT for name.
// An existing object yields common.ErrorAlreadyExists.
func (s *ImageService) RequestUpload(ctx context.Context, name, contentType string, size int64) (storage.PresignedUpload, error) {
	if err := validateObjectName(name); err != nil {
		return storage.PresignedUpload{}, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return storage.PresignedUpload{}, fmt.Errorf("%w: content type %q is not an image", common.ErrorValidation, contentType)
	}
	if size <= 0 || size > s.maxSize {
		return storage.PresignedUpload{}, fmt.Errorf("%w: size %d outside 1..%d", common.ErrorValidation, size, s.maxSize)
	}

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return storage.PresignedUpload{}, err
	}
	if exists {
		return storage.PresignedUpload{}, fmt.Errorf("%w: object %s", common.ErrorAlreadyExists, name)
	}

	up, err := s.store.PresignUpload(ctx, name, contentType, size, s.uploadTTL)
	if err != nil {
		return storage.PresignedUpload{}, err
	}
	s.logger.Info(ctx, "upload slot issued", "name", name, "size", size)
	return up, nil
}

// Sign mints a read URL for an uploaded object. ttl is clamped by the store.
func (s *ImageService) Sign(ctx context.Context, name string, ttl time.Duration) (storage.SignedURL, error) {
	if err := validateObjectName(name); err != nil {
		return storage.SignedURL{}, err
	}

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return storage.SignedURL{}, err
	}
	if !exists {
		return storage.SignedURL{}, fmt.Errorf("%w: object %s", common.ErrorNotFound, name)
	}

	return s.store.SignURL(ctx, name, ttl)
}

func validateObjectName(name string) error {
	if !objectNamePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid object name %q", common.ErrorValidation, name)
	}
	return nil
}
