package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var validResolutions = map[string]bool{
	"original": true,
	"1080p":    true,
	"720p":     true,
	"480p":     true,
}

var validQualities = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateUpload(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateUpload() error {
	if c.Upload.Endpoint == "" {
		return nil
	}
	parsed, err := url.Parse(c.Upload.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upload.endpoint %q is not a valid URL", c.Upload.Endpoint)
	}
	return nil
}

func (c *Config) validateRender() error {
	if !validResolutions[c.Render.Resolution] {
		return fmt.Errorf("render.resolution must be one of original, 1080p, 720p, 480p; got %q", c.Render.Resolution)
	}
	if !validQualities[c.Render.Quality] {
		return fmt.Errorf("render.quality must be one of high, medium, low; got %q", c.Render.Quality)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json; got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error; got %q", c.Logging.Level)
	}
	return nil
}
