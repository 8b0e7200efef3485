// Package cli wires configuration, services and jobs into cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sleeper-league-bot/config"
	"sleeper-league-bot/logging"
)

var rootCmd = &cobra.Command{
	Use:   "sleeper-league-bot",
	Short: "Scheduled Discord notifications for a Sleeper fantasy league",
	Long: `Posts weekly recaps with power rankings, starting lineup health checks
and NFL wind/rain watches to a Discord channel.

Run a job once with "sleeper-league-bot recap", keep them on a timer with
"sleeper-league-bot schedule", or expose the operator API with
"sleeper-league-bot serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print messages instead of posting to Discord")
	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
}

// loadConfig reads configuration, applies persistent flag overrides and
// configures the global logger
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.LoadWith(func(c *config.Config) {
		if dryRun {
			c.Discord.DryRun = true
		}
		if level != "" {
			c.Logging.Level = level
		}
	})
	if err != nil {
		return nil, err
	}

	logging.Configure(cfg.ToLoggingConfig())
	cfg.LogConfiguration()
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
