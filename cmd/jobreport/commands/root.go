package commands

import (
	"autorecruiter/internal/components/telemetry"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

var otelProviders telemetry.Providers

var rootCmd = &cobra.Command{
	Use:   "jobreport",
	Short: "jobreport searches job boards and turns the results into spreadsheet reports.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)

		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to load .env", "err", err)
		}

		otelProviders, err = telemetry.SetupFromEnv(cmd.Context(), "jobreport")
		if err != nil {
			slog.Warn("failed to setup telemetry, continuing without export", "err", err)
		}
		if otelProviders.MeterProvider != nil {
			telemetry.InstrumentPerfStats(cmd.Context(), time.Second*30)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := otelProviders.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Path to the configuration file, a missing file uses the defaults.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
