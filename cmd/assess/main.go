package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"health-risk-predictor/internal/assessment"
	"health-risk-predictor/internal/config"
	"health-risk-predictor/internal/report"
	"health-risk-predictor/internal/wizard"
)

const retryBackoff = 500 * time.Millisecond

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		gatewayURL string
		retries    int
	)

	cmd := &cobra.Command{
		Use:           "assess",
		Short:         "Interactive health risk assessment",
		Long:          "Walks through four steps of health data, submits them to the prediction gateway and shows the risk with recommendations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("gateway") {
				cfg.Gateway.URL = gatewayURL
			}
			if cmd.Flags().Changed("retries") {
				cfg.Gateway.Retries = retries
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&gatewayURL, "gateway", "", "prediction gateway base URL")
	cmd.Flags().IntVar(&retries, "retries", 1, "attempts per submission")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := config.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := assessment.NewDispatcher(cfg.Gateway.URL,
		assessment.WithTimeout(cfg.Gateway.Timeout),
		assessment.WithLogger(logger),
	)
	sender := assessment.WithRetry(dispatcher, cfg.Gateway.Retries, retryBackoff)

	w := wizard.New(wizard.NewSurveyDriver(os.Stdout), sender,
		wizard.WithReports(report.NewGenerator(cfg.Report.FontPaths...)),
		wizard.WithLogger(logger),
	)

	err := w.Run(ctx)
	switch {
	case err == nil, errors.Is(err, wizard.ErrAborted), errors.Is(err, context.Canceled):
		return nil
	default:
		fmt.Fprintln(os.Stderr, "assess:", err)
		return err
	}
}
