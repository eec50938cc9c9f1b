package config

import (
	"github.com/dmitrijs2005/scpcatalog/internal/flagx"
	"github.com/dmitrijs2005/scpcatalog/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations accept
// "15m" style strings or integer nanoseconds. Absent keys keep their current value.
type JsonConfig struct {
	HTTPAddr                  string         `json:"http_addr"`
	DatabaseDriver            string         `json:"database_driver"`
	DatabaseDSN               string         `json:"database_dsn"`
	SecretKey                 string         `json:"secret_key"`
	TokenValidityDuration     timex.Duration `json:"token_validity_duration"`
	TokenSubject              string         `json:"token_subject"`
	S3RootUser                string         `json:"s3_root_user"`
	S3RootPassword            string         `json:"s3_root_password"`
	S3Bucket                  string         `json:"s3_bucket"`
	S3Region                  string         `json:"s3_region"`
	S3BaseEndpoint            string         `json:"s3_base_endpoint"`
	UploadURLValidityDuration timex.Duration `json:"upload_url_validity_duration"`
	MaxImageSize              int64          `json:"max_image_size"`
	CORSAllowedOrigins        string         `json:"cors_allowed_origins"`
	LogFormat                 string         `json:"log_format"`
	LogLevel                  string         `json:"log_level"`
	ShutdownTimeout           timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c / -config, if any.
// An unreadable or malformed file panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	c := &JsonConfig{}
	if err := flagx.LoadJSON(path, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenSubject, c.TokenSubject)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.CORSAllowedOrigins, c.CORSAllowedOrigins)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.UploadURLValidityDuration.Duration != 0 {
		config.UploadURLValidityDuration = c.UploadURLValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.MaxImageSize != 0 {
		config.MaxImageSize = c.MaxImageSize
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
