package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the weighttracker CLI.
//
// AWS credentials are optional; when empty the default AWS credential chain
// is used. AWSEndpoint points SNS and S3 at an S3/SNS-compatible endpoint
// (e.g. a local emulator).
type Config struct {
	DatabasePath string `env:"WT_DATABASE_PATH"`

	LogLevel   string `env:"WT_LOG_LEVEL"`
	LogBackend string `env:"WT_LOG_BACKEND"`
	LogJSON    bool   `env:"WT_LOG_JSON"`

	SessionTTL time.Duration `env:"WT_SESSION_TTL"`

	SMSEnabled bool `env:"WT_SMS_ENABLED"`

	AWSRegion          string `env:"WT_AWS_REGION"`
	AWSAccessKeyID     string `env:"WT_AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"WT_AWS_SECRET_ACCESS_KEY"`
	AWSEndpoint        string `env:"WT_AWS_ENDPOINT"`

	BackupBucket string `env:"WT_BACKUP_BUCKET"`
	BackupPrefix string `env:"WT_BACKUP_PREFIX"`
}

// LoadDefaults populates c with defaults suitable for local use.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "weighttracker.db"
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.SessionTTL = 24 * time.Hour
	c.AWSRegion = "us-east-1"
	c.BackupPrefix = "weighttracker/"
}

// LoadConfig builds a Config from defaults, the JSON file named in args,
// WT_* environment variables and finally the flags in args.
// args normally is os.Args[1:].
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
