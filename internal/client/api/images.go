package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/dmitrijs2005/scpcatalog/internal/netx"
)

// ImageFile is a local image picked for upload.
type ImageFile struct {
	// Name is the object name to store the file under.
	Name        string
	ContentType string
	Data        []byte
}

// UploadedImage is the outcome of the upload-then-sign sequence.
type UploadedImage struct {
	URL  string
	Name string
}

// UploadImage stores file as object name and returns a signed read URL.
func (c *Client) UploadImage(ctx context.Context, file ImageFile, name string) (string, error) {
	up, err := c.UploadImageObject(ctx, file, name)
	if err != nil {
		return "", err
	}
	return up.URL, nil
}

// UploadImageObject is UploadImage that also reports the object name, for
// callers that persist it next to the URL.
func (c *Client) UploadImageObject(ctx context.Context, file ImageFile, name string) (UploadedImage, error) {
	if err := validateImage(file, name); err != nil {
		return UploadedImage{}, err
	}

	slot, err := c.requestSlot(ctx, file, name)
	if err != nil {
		return UploadedImage{}, err
	}

	err = netx.UploadToPresignedURL(ctx, c.upload, netx.Upload{
		URL:         slot.UploadURL,
		ContentType: file.ContentType,
		Headers:     slot.Headers,
		Body:        file.Data,
	})
	if err != nil {
		return UploadedImage{}, uploadFailure(err)
	}

	signed, err := c.sign(ctx, name)
	if err != nil {
		return UploadedImage{}, err
	}
	return UploadedImage{URL: signed, Name: name}, nil
}

func validateImage(file ImageFile, name string) error {
	switch {
	case len(file.Data) == 0:
		return validationError("no image file provided")
	case strings.TrimSpace(name) == "":
		return validationError("image file name is required")
	case !strings.HasPrefix(file.ContentType, "image/"):
		return validationError("file must be an image")
	case len(file.Data) > MaxImageSize:
		return validationError("image must be 5 MB or smaller")
	}
	return nil
}

func (c *Client) requestSlot(ctx context.Context, file ImageFile, name string) (models.UploadSlot, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(models.UploadRequest{Name: name, ContentType: file.ContentType, Size: int64(len(file.Data))}).
		Post(imagesPath)
	if transportFailed(resp, err) {
		return models.UploadSlot{}, networkError(err)
	}
	if !isSuccess(resp) {
		e := writeFailure(resp.StatusCode(), resp.Body(), msgNotFound)
		if e.Status == http.StatusConflict {
			e.Message = msgImageExists
		}
		return models.UploadSlot{}, e
	}

	var slot models.UploadSlot
	if err := json.Unmarshal(resp.Body(), &slot); err != nil || slot.UploadURL == "" {
		return models.UploadSlot{}, &Error{Kind: ErrServer, Status: resp.StatusCode(), Message: msgBadSlot, Err: err}
	}
	return slot, nil
}

// uploadFailure maps a presigned PUT error. The store answers 412 when
// If-None-Match: * finds an existing object.
func uploadFailure(err error) *Error {
	var se *netx.StatusError
	if !errors.As(err, &se) {
		return networkError(err)
	}
	switch se.StatusCode {
	case http.StatusPreconditionFailed, http.StatusConflict:
		return &Error{Kind: ErrConflict, Status: se.StatusCode, Message: msgImageExists, Err: err}
	case http.StatusForbidden:
		return &Error{Kind: ErrPermission, Status: se.StatusCode, Message: msgPermission, Err: err}
	default:
		return &Error{Kind: ErrServer, Status: se.StatusCode, Message: "failed to upload image", Err: err}
	}
}

func (c *Client) sign(ctx context.Context, name string) (string, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(models.SignRequest{ExpiresInSeconds: int64(c.signTTL.Seconds())}).
		Post(imagesPath + "/" + url.PathEscape(name) + "/sign")
	if transportFailed(resp, err) {
		return "", networkError(err)
	}
	if !isSuccess(resp) {
		return "", &Error{Kind: ErrServer, Status: resp.StatusCode(), Message: msgSignFailed}
	}

	var signed models.SignedImage
	if err := json.Unmarshal(resp.Body(), &signed); err != nil || signed.URL == "" {
		return "", &Error{Kind: ErrServer, Status: resp.StatusCode(), Message: msgSignFailed, Err: err}
	}
	return signed.URL, nil
}
