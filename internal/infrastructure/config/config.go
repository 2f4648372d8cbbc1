package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`

	Billing BillingConfig `koanf:"billing"`
}

type BillingConfig struct {
	// Per-minute rates as decimal strings to avoid float drift
	PeakRate             string `koanf:"peak_rate" validate:"required"`
	OffPeakRate          string `koanf:"off_peak_rate" validate:"required"`
	AdditionalMinuteRate string `koanf:"additional_minute_rate" validate:"required"`

	FreeMinutes int `koanf:"free_minutes" validate:"min=0"`

	PeakStart time.Duration `koanf:"peak_start" validate:"min=0"`
	PeakEnd   time.Duration `koanf:"peak_end" validate:"gtfield=PeakStart"`

	// Timestamp layout of the call log, in Go reference-time notation
	TimestampLayout string `koanf:"timestamp_layout" validate:"required"`

	Currency      string `koanf:"currency" validate:"required,len=3"`
	CurrencyLabel string `koanf:"currency_label" validate:"required"`

	// Default call log path for the CLI
	LogPath string `koanf:"log_path" validate:"required"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load defaults
	defaults := &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Billing: BillingConfig{
			PeakRate:             "1.00",
			OffPeakRate:          "0.50",
			AdditionalMinuteRate: "0.20",
			FreeMinutes:          5,
			PeakStart:            8 * time.Hour,
			PeakEnd:              16 * time.Hour,
			TimestampLayout:      "02-01-2006 15:04:05",
			Currency:             "CZK",
			CurrencyLabel:        "Kč",
			LogPath:              "calls.csv",
		},
	}

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Load from config file if given; the file is optional otherwise
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	} else {
		_ = k.Load(file.Provider("configs/telebill.yaml"), yaml.Parser())
	}

	// Override with environment variables
	if err := k.Load(env.Provider("TELEBILL_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "TELEBILL_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
