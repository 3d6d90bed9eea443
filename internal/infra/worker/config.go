package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	pkgconfig "aniexo/pkg/config"

	"github.com/robfig/cron/v3"
)

// WarmerConfig controls the scheduled cache refresh.
//
// Environment variables:
//   - WARMER_ENABLED: "false" disables the warmer (default: true)
//   - WARMER_SCHEDULE: 5-field cron expression (default: "*/4 * * * *")
//   - WARMER_TIMEZONE: IANA timezone for the schedule (default: "UTC")
//   - WARMER_RUN_TIMEOUT: upper bound for one cycle (default: 2m, range 10s-15m)
//   - WARMER_ON_START: run one cycle immediately at startup (default: true)
type WarmerConfig struct {
	Enabled    bool
	Schedule   string
	Timezone   string
	RunTimeout time.Duration
	OnStart    bool
}

// DefaultConfig refreshes every four minutes, inside the 300s cache TTL, so
// the fixed views are never served cold.
func DefaultConfig() WarmerConfig {
	return WarmerConfig{
		Enabled:    true,
		Schedule:   "*/4 * * * *",
		Timezone:   "UTC",
		RunTimeout: 2 * time.Minute,
		OnStart:    true,
	}
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a 5-field cron expression.
func ValidateSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("invalid cron schedule: cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ValidateTimezone checks an IANA timezone name.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return errors.New("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", tz, err)
	}
	return nil
}

const (
	minRunTimeout = 10 * time.Second
	maxRunTimeout = 15 * time.Minute
)

func validateRunTimeout(d time.Duration) error {
	return pkgconfig.ValidateDurationRange(d, minRunTimeout, maxRunTimeout)
}

// Validate returns every invalid field joined into one error.
func (c *WarmerConfig) Validate() error {
	var errs []error
	if err := ValidateSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateRunTimeout(c.RunTimeout); err != nil {
		errs = append(errs, fmt.Errorf("run timeout: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv reads WarmerConfig from the environment. It never fails:
// an invalid value is logged, counted in metrics and replaced by its default.
func LoadConfigFromEnv(logger *slog.Logger, m *Metrics) WarmerConfig {
	cfg := DefaultConfig()
	fallback := func(field, key, raw string, err error) {
		m.RecordFallback(field)
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("env_key", key),
			slog.String("invalid_value", raw),
			slog.String("error", err.Error()))
	}

	if raw := os.Getenv("WARMER_ENABLED"); raw != "" {
		if v, err := strconv.ParseBool(raw); err != nil {
			fallback("enabled", "WARMER_ENABLED", raw, err)
		} else {
			cfg.Enabled = v
		}
	}

	if raw := os.Getenv("WARMER_SCHEDULE"); raw != "" {
		if err := ValidateSchedule(raw); err != nil {
			fallback("schedule", "WARMER_SCHEDULE", raw, err)
		} else {
			cfg.Schedule = raw
		}
	}

	if raw := os.Getenv("WARMER_TIMEZONE"); raw != "" {
		if err := ValidateTimezone(raw); err != nil {
			fallback("timezone", "WARMER_TIMEZONE", raw, err)
		} else {
			cfg.Timezone = raw
		}
	}

	if raw := os.Getenv("WARMER_RUN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err == nil {
			err = validateRunTimeout(d)
		}
		if err != nil {
			fallback("run_timeout", "WARMER_RUN_TIMEOUT", raw, err)
		} else {
			cfg.RunTimeout = d
		}
	}

	if raw := os.Getenv("WARMER_ON_START"); raw != "" {
		if v, err := strconv.ParseBool(raw); err != nil {
			fallback("on_start", "WARMER_ON_START", raw, err)
		} else {
			cfg.OnStart = v
		}
	}

	m.RecordLoadTimestamp()
	return cfg
}
