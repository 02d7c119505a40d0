// Package config loads runtime configuration for the profilespaces CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. A .env file (-env path, or ./.env when present) loaded into the
//     process environment; variables already set are kept.
//  4. Environment variables prefixed with PROFILESPACES_, e.g.
//     PROFILESPACES_API_BASE_URL or PROFILESPACES_REQUEST_TIMEOUT=5s.
//  5. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL (default http://localhost:8000/api)
//	-k string   API key
//	-d string   local database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://profilespaces.example/api",
//	  "api_key": "...",
//	  "database_path": "/var/lib/profilespaces/client.db",
//	  "session_secret": "...",
//	  "request_timeout": "10s",
//	  "toast_duration": "3.2s",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// When session_secret is set the stored session is encrypted at rest.
package config
