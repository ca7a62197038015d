package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/weighttracker/internal/flagx"
	"github.com/dmitrijs2005/weighttracker/internal/timex"
)

// JsonConfig is the on-disk representation of Config. It is pre-filled from
// the current Config, so keys missing from the file keep their values.
type JsonConfig struct {
	DatabasePath       string         `json:"database_path"`
	LogLevel           string         `json:"log_level"`
	LogBackend         string         `json:"log_backend"`
	LogJSON            bool           `json:"log_json"`
	SessionTTL         timex.Duration `json:"session_ttl"`
	SMSEnabled         bool           `json:"sms_enabled"`
	AWSRegion          string         `json:"aws_region"`
	AWSAccessKeyID     string         `json:"aws_access_key_id"`
	AWSSecretAccessKey string         `json:"aws_secret_access_key"`
	AWSEndpoint        string         `json:"aws_endpoint"`
	BackupBucket       string         `json:"backup_bucket"`
	BackupPrefix       string         `json:"backup_prefix"`
}

// parseJson overlays cfg with the file given via -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	jc := JsonConfig{
		DatabasePath:       cfg.DatabasePath,
		LogLevel:           cfg.LogLevel,
		LogBackend:         cfg.LogBackend,
		LogJSON:            cfg.LogJSON,
		SessionTTL:         timex.Duration{Duration: cfg.SessionTTL},
		SMSEnabled:         cfg.SMSEnabled,
		AWSRegion:          cfg.AWSRegion,
		AWSAccessKeyID:     cfg.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.AWSSecretAccessKey,
		AWSEndpoint:        cfg.AWSEndpoint,
		BackupBucket:       cfg.BackupBucket,
		BackupPrefix:       cfg.BackupPrefix,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.DatabasePath = jc.DatabasePath
	cfg.LogLevel = jc.LogLevel
	cfg.LogBackend = jc.LogBackend
	cfg.LogJSON = jc.LogJSON
	cfg.SessionTTL = jc.SessionTTL.Duration
	cfg.SMSEnabled = jc.SMSEnabled
	cfg.AWSRegion = jc.AWSRegion
	cfg.AWSAccessKeyID = jc.AWSAccessKeyID
	cfg.AWSSecretAccessKey = jc.AWSSecretAccessKey
	cfg.AWSEndpoint = jc.AWSEndpoint
	cfg.BackupBucket = jc.BackupBucket
	cfg.BackupPrefix = jc.BackupPrefix
	return nil
}
