package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/weighttracker/internal/flagx"
)

// parseFlags applies the command-line flags this package owns. Arguments it
// does not recognise are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-d", "-l", "-t", "-b", "-r"})

	fs := flag.NewFlagSet("weighttracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	sessionTTL := fs.Int("t", int(cfg.SessionTTL.Minutes()), "session lifetime (in minutes)")
	fs.StringVar(&cfg.BackupBucket, "b", cfg.BackupBucket, "S3 bucket for backups")
	fs.StringVar(&cfg.AWSRegion, "r", cfg.AWSRegion, "AWS region")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// -t is minutes only; leave sub-minute values from other sources alone
	// unless the flag was given explicitly.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
	return nil
}
