package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

// FetchAll returns every entry in fetch order.
func (c *Client) FetchAll(ctx context.Context) ([]models.Entry, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(entriesPath)
	if transportFailed(resp, err) {
		return nil, networkError(err)
	}
	if !isSuccess(resp) {
		return nil, readFailure(resp.StatusCode())
	}

	var entries []models.Entry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil || entries == nil {
		return nil, validationError(msgInvalidFormat)
	}
	return entries, nil
}

func (c *Client) FetchByID(ctx context.Context, id string) (models.Entry, error) {
	if strings.TrimSpace(id) == "" {
		return models.Entry{}, validationError("id is required")
	}

	resp, err := c.rest.R().SetContext(ctx).Get(entriesPath + "/" + url.PathEscape(id))
	if transportFailed(resp, err) {
		return models.Entry{}, networkError(err)
	}
	if !isSuccess(resp) {
		return models.Entry{}, readFailure(resp.StatusCode())
	}

	e, ok, err := decodeOne(resp.Body())
	if err != nil {
		return models.Entry{}, err
	}
	if !ok {
		return models.Entry{}, readFailure(404)
	}
	return e, nil
}

// requireFields trims e and rejects it when any of the four text fields is
// empty. A known class is normalized to its canonical spelling; others pass
// through unchanged.
func requireFields(e models.Entry) (models.Entry, error) {
	e = e.Trimmed()
	if missing := e.MissingFields(); len(missing) > 0 {
		return e, validationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	if class, ok := models.ParseClass(string(e.Class)); ok {
		e.Class = class
	}
	return e, nil
}

// validateNew is requireFields plus the rules for new entries: the item
// prefix and a class from the enumeration.
func (c *Client) validateNew(e models.Entry) (models.Entry, error) {
	e, err := requireFields(e)
	if err != nil {
		return e, err
	}
	if !strings.HasPrefix(strings.ToLower(e.Item), strings.ToLower(c.itemPrefix)) {
		return e, validationError("item must start with %q", c.itemPrefix)
	}
	if !models.IsKnownClass(e.Class) {
		return e, validationError("class must be one of Safe, Euclid, Keter")
	}
	return e, nil
}

// Create validates in locally, then POSTs it. Nothing is sent when
// validation fails.
func (c *Client) Create(ctx context.Context, in models.Entry) (models.Entry, error) {
	e, err := c.validateNew(in)
	if err != nil {
		return models.Entry{}, err
	}
	e.ID = ""
	e.CreatedAt = 0

	resp, err := c.rest.R().SetContext(ctx).SetBody(e).Post(entriesPath)
	if transportFailed(resp, err) {
		return models.Entry{}, networkError(err)
	}
	if !isSuccess(resp) {
		return models.Entry{}, writeFailure(resp.StatusCode(), resp.Body(), msgNotFound)
	}

	created, ok, err := decodeOne(resp.Body())
	if err != nil {
		return models.Entry{}, err
	}
	if !ok {
		return models.Entry{}, &Error{Kind: ErrServer, Status: resp.StatusCode(), Message: "server returned no record"}
	}
	return created, nil
}

// Update only requires the four text fields to be non-blank, so stored
// entries with another prefix or class stay editable. It uploads image first
// when it is non-nil and aborts without writing the record if that fails. An empty array in the response is treated as
// success and answered with the submitted payload.
func (c *Client) Update(ctx context.Context, in models.Entry, image *ImageFile) (models.Entry, error) {
	if strings.TrimSpace(in.ID) == "" {
		return models.Entry{}, validationError("id is required")
	}

	e, err := requireFields(in)
	if err != nil {
		return models.Entry{}, err
	}

	if image != nil {
		uploaded, err := c.UploadImageObject(ctx, *image, image.Name)
		if err != nil {
			return models.Entry{}, err
		}
		e.Image, e.ImageKey = uploaded.URL, uploaded.Name
	}

	payload := models.Entry{
		Item:        e.Item,
		Class:       e.Class,
		Description: e.Description,
		Containment: e.Containment,
		Image:       e.Image,
		ImageKey:    e.ImageKey,
	}

	resp, err := c.rest.R().SetContext(ctx).SetBody(payload).Put(entriesPath + "/" + url.PathEscape(in.ID))
	if transportFailed(resp, err) {
		return models.Entry{}, networkError(err)
	}
	if !isSuccess(resp) {
		return models.Entry{}, writeFailure(resp.StatusCode(), resp.Body(), msgNotFound)
	}

	updated, ok, err := decodeOne(resp.Body())
	if err != nil {
		return models.Entry{}, err
	}
	if !ok {
		payload.ID = in.ID
		payload.CreatedAt = in.CreatedAt
		return payload, nil
	}
	return updated, nil
}

// Delete removes entry id. It returns true or an error, never false with a
// nil error.
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, validationError("id is required")
	}

	resp, err := c.rest.R().SetContext(ctx).Delete(entriesPath + "/" + url.PathEscape(id))
	if transportFailed(resp, err) {
		return false, networkError(err)
	}
	if !isSuccess(resp) {
		return false, writeFailure(resp.StatusCode(), resp.Body(), msgDeleteNotFound)
	}
	return true, nil
}
