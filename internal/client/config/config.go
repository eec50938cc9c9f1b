package config

import "time"

// Config holds runtime settings for the catalog CLI.
//
// Fields:
//   - ServerURL: base URL of the catalog REST API.
//   - APIToken: bearer token sent on write requests; empty sends none.
//   - ItemPrefix: required prefix of every item identifier.
//   - RequestTimeout: per-request HTTP timeout.
//   - SignedURLValidityDuration: expiry requested when signing uploaded images.
type Config struct {
	ServerURL                 string        `envconfig:"SERVER_URL"`
	APIToken                  string        `envconfig:"API_TOKEN"`
	ItemPrefix                string        `envconfig:"ITEM_PREFIX"`
	RequestTimeout            time.Duration `envconfig:"REQUEST_TIMEOUT"`
	SignedURLValidityDuration time.Duration `envconfig:"SIGNED_URL_VALIDITY_DURATION"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.APIToken = ""
	c.ItemPrefix = "SCP-"
	c.RequestTimeout = 30 * time.Second
	c.SignedURLValidityDuration = 365 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
