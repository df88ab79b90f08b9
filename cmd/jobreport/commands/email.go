package commands

import (
	"autorecruiter/internal/components/chrono"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/internal/mailer"
	"autorecruiter/pkg/serviceutil"
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

type emailOptions struct {
	To        []string
	ReportDir string
	From      string
}

var emailOpts emailOptions

func init() {
	emailCmd.Flags().StringSliceVar(&emailOpts.To, "email-to", nil, "Recipients of the report, repeatable.")
	emailCmd.Flags().StringVar(&emailOpts.ReportDir, "job-report-base-dir", "", "Directory to look for today's reports in.")
	emailCmd.Flags().StringVar(&emailOpts.From, "gmail-account", "", "Address to send from, defaults to the smtp email_address in the config.")
	emailCmd.MarkFlagRequired("email-to")
	emailCmd.MarkFlagRequired("job-report-base-dir")
	rootCmd.AddCommand(emailCmd)
}

var emailCmd = &cobra.Command{
	Use:   "email --email-to <address> --job-report-base-dir <dir>",
	Short: "Emails the reports generated today.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		err = runEmail(cmd.Context(), cfg, emailOpts)
		if err != nil {
			serviceutil.Fatal("failed to email job reports", err)
		}
	},
}

func runEmail(ctx context.Context, cfg Config, opts emailOptions) error {
	if opts.From != "" {
		cfg.Smtp.EmailAddress = opts.From
	}
	if cfg.Smtp.EmailAddress == "" {
		return fmt.Errorf("no sender address, set smtp.email_address or --gmail-account")
	}

	m := mailer.NewMailer(
		mailer.NewSmtpSender(cfg.Smtp),
		telemetry.SlogAPI{},
		chrono.NewStandardTime(),
	)
	files, err := m.SendReports(ctx, cfg.Smtp.EmailAddress, opts.To, opts.ReportDir)
	if err != nil {
		return err
	}
	slog.Info("job reports sent", "to", opts.To, "files", files)
	return nil
}
