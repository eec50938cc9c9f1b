package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "server.json", map[string]any{
		"http_addr":                    ":8081",
		"database_driver":              "sqlite",
		"database_dsn":                 "file:catalog.db",
		"secret_key":                   "my_secret_key",
		"token_validity_duration":      "2h",
		"token_subject":                "importer",
		"s3_bucket":                    "bucket",
		"s3_base_endpoint":             "http://minio:9000",
		"upload_url_validity_duration": "5m",
		"max_image_size":               1024,
		"shutdown_timeout":             3000000000,
	})

	t.Run("loads from json and keeps absent keys", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":8081", cfg.HTTPAddr)
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, "file:catalog.db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, "importer", cfg.TokenSubject)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
		assert.Equal(t, 5*time.Minute, cfg.UploadURLValidityDuration)
		assert.Equal(t, int64(1024), cfg.MaxImageSize)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)

		assert.Equal(t, "admin", cfg.S3RootUser)
		assert.Equal(t, "us-east-1", cfg.S3Region)
	})

	t.Run("no config flag leaves config unchanged", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{HTTPAddr: "defaults:1234", S3Bucket: "s3bucket"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "s3bucket", cfg.S3Bucket)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-c", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
