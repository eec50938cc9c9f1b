package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/client/config"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/go-resty/resty/v2"
)

const (
	entriesPath = "/api/scp"
	imagesPath  = "/api/images"

	// MaxImageSize is the largest file UploadImage accepts.
	MaxImageSize = 5 << 20
)

// Client talks to the catalog REST API.
type Client struct {
	rest       *resty.Client
	upload     *http.Client
	itemPrefix string
	signTTL    time.Duration
}

// Option configures a Client during construction in NewClient.
type Option func(*Client)

// WithTransport replaces the round tripper used for API calls and uploads.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.rest.SetTransport(rt)
		c.upload.Transport = rt
	}
}

// WithUploadClient sets the http.Client used for presigned PUTs.
func WithUploadClient(hc *http.Client) Option {
	return func(c *Client) {
		c.upload = hc
	}
}

func NewClient(cfg *config.Config, opts ...Option) *Client {
	r := resty.New().
		SetBaseURL(strings.TrimRight(cfg.ServerURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.RequestTimeout)
	if cfg.APIToken != "" {
		r.SetAuthToken(cfg.APIToken)
	}

	prefix := cfg.ItemPrefix
	if prefix == "" {
		prefix = models.DefaultItemPrefix
	}

	c := &Client{
		rest:       r,
		upload:     &http.Client{Timeout: cfg.RequestTimeout},
		itemPrefix: prefix,
		signTTL:    cfg.SignedURLValidityDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ItemPrefix is the prefix every item identifier must start with.
func (c *Client) ItemPrefix() string {
	return c.itemPrefix
}

// transportFailed reports whether the request never got a response. An
// error that comes with a response is left to status classification.
func transportFailed(resp *resty.Response, err error) bool {
	return err != nil && (resp == nil || resp.RawResponse == nil)
}

func isSuccess(resp *resty.Response) bool {
	return resp.StatusCode() >= 200 && resp.StatusCode() < 300
}

// bodyMessage extracts "error" or "message" from a JSON error body.
func bodyMessage(body []byte) string {
	var b struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &b); err != nil {
		return ""
	}
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// decodeOne accepts either a bare entry or an array of entries. ok is false
// for an empty array.
func decodeOne(body []byte) (e models.Entry, ok bool, err error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []models.Entry
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return models.Entry{}, false, validationError(msgInvalidFormat)
		}
		if len(list) == 0 {
			return models.Entry{}, false, nil
		}
		return list[0], true, nil
	}

	if err := json.Unmarshal(trimmed, &e); err != nil {
		return models.Entry{}, false, validationError(msgInvalidFormat)
	}
	return e, true, nil
}
