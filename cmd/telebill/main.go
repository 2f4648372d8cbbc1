// Telebill computes the total amount due for an operator call log.
//
// The log is newline-delimited CSV: phone number, call start, call end.
// Malformed lines are reported and skipped; the single most-frequently-dialed
// number is exempt from charges.
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/phonecompany/telebill/internal/domain/financial"
	"github.com/phonecompany/telebill/internal/infrastructure/config"
	"github.com/phonecompany/telebill/internal/infrastructure/logsource"
	"github.com/phonecompany/telebill/internal/infrastructure/telemetry"
	"github.com/phonecompany/telebill/internal/service/billing"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		logPath    string
	)

	cmd := &cobra.Command{
		Use:   "telebill",
		Short: "Compute the total amount due for a telephone call log",
		Long: `Telebill reads a newline-delimited CSV call log (phone number,
start time, end time), applies the per-minute tariff schedule and prints the
total amount to be paid. Calls to the most-frequently-dialed number are free.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configPath, logPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	cmd.Flags().StringVarP(&logPath, "file", "f", "", "path to the call log (defaults to the configured path)")

	return cmd
}

func run(cmd *cobra.Command, configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := telemetry.SetupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	tariff, err := buildTariff(cfg.Billing)
	if err != nil {
		return fmt.Errorf("building tariff: %w", err)
	}

	if logPath == "" {
		logPath = cfg.Billing.LogPath
	}

	parser := billing.NewLogParser(cfg.Billing.TimestampLayout, billing.NewZapRejectionSink(logger))
	calculator, err := billing.NewCalculator(tariff, cfg.Billing.Currency, parser)
	if err != nil {
		return fmt.Errorf("building calculator: %w", err)
	}
	svc := billing.NewService(logsource.NewFileSource(), parser, calculator, logger)

	total, err := svc.CalculateTotalCost(cmd.Context(), logPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Total amount to be paid: %s %s\n", total.String(), cfg.Billing.CurrencyLabel)
	return nil
}

func buildTariff(cfg config.BillingConfig) (financial.Tariff, error) {
	peak, err := decimal.NewFromString(cfg.PeakRate)
	if err != nil {
		return financial.Tariff{}, fmt.Errorf("invalid peak rate %q: %w", cfg.PeakRate, err)
	}

	offPeak, err := decimal.NewFromString(cfg.OffPeakRate)
	if err != nil {
		return financial.Tariff{}, fmt.Errorf("invalid off-peak rate %q: %w", cfg.OffPeakRate, err)
	}

	additional, err := decimal.NewFromString(cfg.AdditionalMinuteRate)
	if err != nil {
		return financial.Tariff{}, fmt.Errorf("invalid additional-minute rate %q: %w", cfg.AdditionalMinuteRate, err)
	}

	return financial.NewTariff(peak, offPeak, additional, cfg.FreeMinutes, cfg.PeakStart, cfg.PeakEnd)
}
