package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix prefixes every client environment variable, e.g. SCPCATALOG_CLIENT_SERVER_URL.
const EnvPrefix = "SCPCATALOG_CLIENT"

func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
