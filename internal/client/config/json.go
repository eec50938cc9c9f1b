package config

import (
	"github.com/dmitrijs2005/scpcatalog/internal/flagx"
	"github.com/dmitrijs2005/scpcatalog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations accept strings like "30s" or integer nanoseconds.
type JsonConfig struct {
	ServerURL                 string         `json:"server_url"`
	APIToken                  string         `json:"api_token"`
	ItemPrefix                string         `json:"item_prefix"`
	RequestTimeout            timex.Duration `json:"request_timeout"`
	SignedURLValidityDuration timex.Duration `json:"signed_url_validity_duration"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Keys absent from the file keep their current value. Read or
// decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	var jc JsonConfig
	if err := flagx.LoadJSON(path, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.APIToken != "" {
		cfg.APIToken = jc.APIToken
	}
	if jc.ItemPrefix != "" {
		cfg.ItemPrefix = jc.ItemPrefix
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SignedURLValidityDuration.Duration != 0 {
		cfg.SignedURLValidityDuration = jc.SignedURLValidityDuration.Duration
	}
}
