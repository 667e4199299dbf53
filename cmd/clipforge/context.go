package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/encoder"
	"clipforge/internal/jobs"
	"clipforge/internal/logging"
	"clipforge/internal/projectstore"
	"clipforge/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) withStore(fn func(*config.Config, *projectstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := projectstore.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

// newManager assembles a render job manager from the configured encoder and
// upload endpoint. Without an endpoint, exports stay on the local disk.
func newManager(cfg *config.Config, store *projectstore.Store, logger *slog.Logger) *jobs.Manager {
	enc := encoder.NewFFmpeg(encoder.WithBinary(cfg.FFmpeg.Binary))
	var uploader storage.Uploader
	if cfg.Upload.Endpoint != "" {
		uploader = storage.NewHTTPUploader(cfg.Upload.Endpoint, cfg.Upload.Folder)
	}
	return jobs.NewManager(cfg, store, enc, uploader, logger)
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
