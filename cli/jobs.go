package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sleeper-league-bot/models"
	"sleeper-league-bot/services"
)

func init() {
	rootCmd.AddCommand(
		newJobCommand("recap", "Post the weekly recap with power rankings",
			"Summarizes the latest week with matchups (high/low scores, blowouts,\nnail-biters) and appends the power rankings."),
		newJobCommand("lineup", "Post starters flagged with injury designations", ""),
		newJobCommand("weather", "Post the NFL wind and rain watch for this week", ""),
		newJobCommand("rankings", "Post the power rankings on their own", ""),
	)
}

// newJobCommand builds a command that runs one registered job once
func newJobCommand(name, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, name)
		},
	}
	cmd.Flags().Int("week", 0, "Week to report on (0 = latest week with matchups)")
	cmd.Flags().Bool("force", false, "Run even outside the season window")
	return cmd
}

func runJob(cmd *cobra.Command, name string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	week, _ := cmd.Flags().GetInt("week")
	force, _ := cmd.Flags().GetBool("force")
	if week < 0 {
		return fmt.Errorf("--week must be non-negative, got %d", week)
	}

	result, err := a.runner.Run(ctx, name, services.RunOptions{
		DryRun: cfg.Discord.DryRun,
		Force:  force,
		Week:   week,
	})
	if err != nil {
		return err
	}
	if result.Status == models.JobStatusSkipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s skipped: %s\n", name, result.Reason)
	}
	return nil
}
