package commands

import (
	"autorecruiter/internal/components/chrono"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/pkg/configutil"
	"autorecruiter/pkg/serviceutil"
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"
)

var (
	scheduleOpts    generateOptions
	scheduleCron    string
	scheduleEmailTo []string
	scheduleNow     bool
)

func init() {
	scheduleOpts.bind(scheduleCmd)
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "", "Cron spec (America/New_York) to generate reports on, defaults to schedule.cron in the config.")
	scheduleCmd.Flags().StringSliceVar(&scheduleEmailTo, "email-to", nil, "Recipients to email every generated report to, defaults to schedule.email_to in the config.")
	scheduleCmd.Flags().BoolVar(&scheduleNow, "now", false, "Also generate a report immediately on start.")
	scheduleCmd.MarkFlagRequired("job-boards")
	scheduleCmd.MarkFlagRequired("job-titles")
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule --job-boards <board> --job-titles <title> [--cron <spec>] [flags]",
	Short: "Generates (and optionally emails) reports on a cron schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		cfg.Schedule, err = withScheduleFlags(cfg.Schedule, scheduleCron, scheduleEmailTo)
		if err != nil {
			serviceutil.Fatal("failed to apply schedule flags", err)
		}

		ctx := cmd.Context()
		job := scheduledJob{ctx: ctx, cfg: cfg, opts: scheduleOpts}

		cron := chrono.NewStandardCron(telemetry.SlogAPI{})
		defer cron.Stop()
		err = cron.Cron(cfg.Schedule.Cron, job.run)
		if err != nil {
			serviceutil.Fatal("invalid cron spec", err)
		}
		slog.Info("report schedule started", "cron", cfg.Schedule.Cron, "next", cron.Next())

		if scheduleNow {
			go job.run()
		}
		<-ctx.Done()
		slog.Info("stopping report schedule")
	},
}

// withScheduleFlags applies the flags that were given over the configured schedule.
func withScheduleFlags(schedule ScheduleConfig, cron string, emailTo []string) (ScheduleConfig, error) {
	return configutil.Layer(schedule, ScheduleConfig{Cron: cron, EmailTo: emailTo})
}

type scheduledJob struct {
	ctx  context.Context
	cfg  Config
	opts generateOptions
	// a run that takes longer than the interval is not started twice
	lock sync.Mutex
}

func (j *scheduledJob) run() {
	if !j.lock.TryLock() {
		slog.Warn("previous scheduled report is still running, skipping")
		return
	}
	defer j.lock.Unlock()

	path, err := runGenerate(j.ctx, j.cfg, j.opts, os.Stdout)
	if err != nil {
		slog.Error("scheduled report failed", "err", err)
		return
	}
	slog.Info("scheduled report written", "path", path)

	if len(j.cfg.Schedule.EmailTo) == 0 {
		return
	}
	err = runEmail(j.ctx, j.cfg, emailOptions{
		To:        j.cfg.Schedule.EmailTo,
		ReportDir: j.opts.OutputDir,
	})
	if err != nil {
		slog.Error("scheduled report email failed", "err", err)
	}
}
