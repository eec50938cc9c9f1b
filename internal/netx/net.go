// Package netx sends object bytes to presigned object-store URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned when the store answered with a non-2xx status.
// Transport failures are returned unwrapped so callers can tell them apart.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload failed: %s; body: %s", e.Status, e.Body)
}

// Upload describes a single presigned PUT.
type Upload struct {
	URL         string
	ContentType string
	// Headers that were signed into the URL and must be sent verbatim.
	Headers map[string]string
	Body    []byte
}

// UploadToPresignedURL PUTs u.Body to u.URL using client (http.DefaultClient when nil).
func UploadToPresignedURL(ctx context.Context, client *http.Client, u Upload) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.URL, bytes.NewReader(u.Body))
	if err != nil {
		return err
	}

	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	for k, v := range u.Headers {
		req.Header.Set(k, v)
	}
	req.ContentLength = int64(len(u.Body))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}
	return nil
}
