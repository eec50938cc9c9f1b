package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-r string   database driver: pgx or sqlite
//	-d string   database DSN
//	-s string   HMAC secret for write-route tokens
//	-t int      token validity, minutes
//	-n string   subject of issued tokens
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-m int      max image size, bytes
//	-o string   comma-separated CORS origins
//	-l string   log level
//
// Only the flags above are picked out of os.Args, so other components can
// define their own.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-d", "-s", "-t", "-n", "-u", "-p", "-b", "-g", "-e", "-m", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "r", config.DatabaseDriver, "database driver (pgx or sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.TokenSubject, "n", config.TokenSubject, "subject of issued tokens")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.Int64Var(&config.MaxImageSize, "m", config.MaxImageSize, "max image size (bytes)")
	fs.StringVar(&config.CORSAllowedOrigins, "o", config.CORSAllowedOrigins, "CORS allowed origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
