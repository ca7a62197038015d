// Package config loads runtime configuration for the weighttracker CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed WT_ (see the env tags on Config).
//  4. Command-line flags.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-l string   log level (debug, info, warn, error)
//	-t int      session lifetime in minutes
//	-b string   S3 bucket for CSV backups (empty disables export)
//	-r string   AWS region used for SMS and backups
//
// # JSON schema
//
// Durations are read with timex.Duration, so "24h" and integer nanoseconds
// are both accepted:
//
//	{
//	  "database_path": "weighttracker.db",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "session_ttl": "24h",
//	  "sms_enabled": true,
//	  "aws_region": "us-east-1",
//	  "backup_bucket": "wt-backups"
//	}
package config
