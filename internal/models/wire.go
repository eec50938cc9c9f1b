package models

import "time"

// UploadRequest asks the API for a no-overwrite upload slot.
type UploadRequest struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadSlot is a presigned PUT. Headers must be sent with the upload.
type UploadSlot struct {
	Name      string            `json:"name"`
	UploadURL string            `json:"upload_url"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// SignRequest asks for a read URL valid for ExpiresInSeconds.
type SignRequest struct {
	ExpiresInSeconds int64 `json:"expires_in_seconds"`
}

// SignedImage is a time-limited read URL.
type SignedImage struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DeleteResult is the body of a successful delete.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorBody is the body of every API error response.
type ErrorBody struct {
	Error string `json:"error"`
}
