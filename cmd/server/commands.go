package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mlb-affiliates-service/internal/config"
	"mlb-affiliates-service/internal/logging"
	"mlb-affiliates-service/internal/server"
	"mlb-affiliates-service/internal/timeutil"
)

const serviceName = "mlb-affiliates-service"

// Set via -ldflags at build time.
var appVersion = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Daily schedule of an MLB organization and its minor league affiliates",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCmd(), newScheduleCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx, cfg, logger)
	srv.Run(ctx, stop)
	return nil
}

func newScheduleCmd() *cobra.Command {
	var date, tz string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the schedule view for one date as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			loc := cfg.Location()
			if tz != "" {
				if loc = timeutil.LoadLocation(tz); loc == nil {
					return fmt.Errorf("invalid timezone %q", tz)
				}
			}
			day := timeutil.Today(time.Now(), loc)
			if date != "" {
				if day, err = timeutil.ParseDate(date, loc); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			comps := server.BuildComponents(ctx, cfg, logger, nil)
			defer comps.Close()

			view, err := comps.Service.Schedule(ctx, day)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date to look up (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone for the date (default TIMEZONE)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, appVersion)
		},
	}
}

func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.NewLogger(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Service:    serviceName,
		Version:    appVersion,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	return cfg, logger, nil
}
