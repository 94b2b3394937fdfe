package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. The vision API key is not
// validated here: store-only invocations run without it, and the vision
// client reports a configuration error when a run actually needs the key.
func (c *Config) Validate() error {
	if err := c.validateVision(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVision() error {
	if c.Vision.RetryMaxSeconds < c.Vision.RetryInitialSeconds {
		return errors.New("vision.retry_max_seconds must be >= vision.retry_initial_seconds")
	}
	switch c.Vision.Detail {
	case "low", "high", "auto":
	default:
		return fmt.Errorf("vision.detail: unsupported value %q (use low, high, or auto)", c.Vision.Detail)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}
