// Package config loads runtime configuration for the catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables prefixed with SCPCATALOG_CLIENT_.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the catalog API
//	-k string   bearer token for write requests
//	-i int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "api_token": "",
//	  "item_prefix": "SCP-",
//	  "request_timeout": "30s",
//	  "signed_url_validity_duration": "8760h"
//	}
package config
