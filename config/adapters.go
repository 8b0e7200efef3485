package config

import (
	"os"

	"sleeper-league-bot/logging"
)

// ToLoggingConfig converts Config to logging.Config. Logs go to stderr so
// dry-run previews on stdout stay machine-readable.
func (c *Config) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Output:      os.Stderr,
		Prefix:      c.Logging.Prefix,
		EnableColor: c.Logging.EnableColor,
	}
}

// ArchiveEnabled returns whether job results are written to MongoDB
func (c *Config) ArchiveEnabled() bool {
	return c.Database.Enabled
}
