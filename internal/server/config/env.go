package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix prefixes every server environment variable, e.g. SCPCATALOG_HTTP_ADDR.
const EnvPrefix = "SCPCATALOG"

// parseEnv overlays variables that are set; unset ones leave cfg untouched.
// A malformed value panics, like a malformed flag.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
