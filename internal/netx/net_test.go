package netx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadToPresignedURL(t *testing.T) {
	file := []byte("\x89PNG fake image")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod, gotIfNoneMatch string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotIfNoneMatch = r.Header.Get("If-None-Match")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := UploadToPresignedURL(context.Background(), ts.Client(), Upload{
			URL:         ts.URL + "/images/scp-173-1?X-Amz-Signature=abc",
			ContentType: "image/png",
			Headers:     map[string]string{"If-None-Match": "*"},
			Body:        file,
		})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "image/png", gotCT)
		assert.Equal(t, "*", gotIfNoneMatch)
		assert.Equal(t, file, gotBody)
	})

	t.Run("default content type", func(t *testing.T) {
		var gotCT string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
		}))
		defer ts.Close()

		require.NoError(t, UploadToPresignedURL(context.Background(), nil, Upload{URL: ts.URL, Body: file}))
		assert.Equal(t, "application/octet-stream", gotCT)
	})

	t.Run("precondition failed is a status error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPreconditionFailed)
			_, _ = w.Write([]byte("<Error><Code>PreconditionFailed</Code></Error>"))
		}))
		defer ts.Close()

		err := UploadToPresignedURL(context.Background(), ts.Client(), Upload{URL: ts.URL, Body: file})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusPreconditionFailed, se.StatusCode)
		assert.Contains(t, se.Body, "PreconditionFailed")
		assert.Contains(t, err.Error(), "upload failed: 412")
	})

	t.Run("network error is not a status error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := UploadToPresignedURL(context.Background(), nil, Upload{URL: ts.URL, Body: file})
		require.Error(t, err)
		var se *StatusError
		assert.False(t, errors.As(err, &se))
	})
}
