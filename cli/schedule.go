package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sleeper-league-bot/services"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run jobs on their cron schedules until interrupted",
	Long: `Runs recap, lineup and weather on RECAP_CRON, LINEUP_CRON and
WEATHER_CRON, evaluated in SEASON_TZ. An empty spec disables that job.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	scheduler, err := a.scheduler(ctx)
	if err != nil {
		return err
	}

	scheduler.Start()
	a.logger.Infof("Scheduler running with %d job(s) in %s", scheduler.Len(), cfg.Location())
	<-ctx.Done()
	scheduler.Stop()
	return nil
}

// scheduler registers every configured cron spec
func (a *app) scheduler(ctx context.Context) (*services.Scheduler, error) {
	s := services.NewScheduler(ctx, a.runner, a.cfg.Location())
	specs := []struct{ spec, job string }{
		{a.cfg.Scheduler.RecapCron, "recap"},
		{a.cfg.Scheduler.LineupCron, "lineup"},
		{a.cfg.Scheduler.WeatherCron, "weather"},
	}
	for _, entry := range specs {
		if err := s.Add(entry.spec, entry.job); err != nil {
			return nil, err
		}
	}
	return s, nil
}
