package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVision()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}

	// Derived directories follow the data dir unless set explicitly.
	if strings.TrimSpace(c.Paths.UploadsDir) == "" {
		c.Paths.UploadsDir = filepath.Join(c.Paths.DataDir, "images", "uploads")
	} else if c.Paths.UploadsDir, err = expandPath(c.Paths.UploadsDir); err != nil {
		return fmt.Errorf("paths.uploads_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.InventoryDir) == "" {
		c.Paths.InventoryDir = filepath.Join(c.Paths.DataDir, "images", "inventory")
	} else if c.Paths.InventoryDir, err = expandPath(c.Paths.InventoryDir); err != nil {
		return fmt.Errorf("paths.inventory_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = filepath.Join(c.Paths.DataDir, "temp")
	} else if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExportsDir) == "" {
		c.Paths.ExportsDir = filepath.Join(c.Paths.DataDir, "exports")
	} else if c.Paths.ExportsDir, err = expandPath(c.Paths.ExportsDir); err != nil {
		return fmt.Errorf("paths.exports_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeVision() {
	if c.Vision.APIKey == "" {
		if value, ok := os.LookupEnv(visionAPIKeyEnv); ok {
			c.Vision.APIKey = value
		}
	}
	c.Vision.APIKey = strings.TrimSpace(c.Vision.APIKey)
	c.Vision.BaseURL = strings.TrimSpace(c.Vision.BaseURL)
	if c.Vision.BaseURL == "" {
		c.Vision.BaseURL = defaultVisionBaseURL
	}
	c.Vision.Model = strings.TrimSpace(c.Vision.Model)
	if c.Vision.Model == "" {
		c.Vision.Model = defaultVisionModel
	}
	if c.Vision.TimeoutSeconds <= 0 {
		c.Vision.TimeoutSeconds = defaultVisionTimeout
	}
	if c.Vision.MaxAttempts <= 0 {
		c.Vision.MaxAttempts = defaultVisionMaxAttempts
	}
	if c.Vision.RetryInitialSeconds <= 0 {
		c.Vision.RetryInitialSeconds = defaultVisionRetryInitial
	}
	if c.Vision.RetryMaxSeconds <= 0 {
		c.Vision.RetryMaxSeconds = defaultVisionRetryMax
	}
	if c.Vision.MaxTokens <= 0 {
		c.Vision.MaxTokens = defaultVisionMaxTokens
	}
	c.Vision.Detail = strings.ToLower(strings.TrimSpace(c.Vision.Detail))
	if c.Vision.Detail == "" {
		c.Vision.Detail = defaultVisionDetail
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
