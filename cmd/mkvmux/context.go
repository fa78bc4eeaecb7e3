package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mkvmux/internal/config"
	"mkvmux/internal/logging"
	"mkvmux/internal/mkvmerge"
)

type commandContext struct {
	configFlag string

	// executor overrides the process executor on constructed clients.
	// Tests inject fakes here; production leaves it nil.
	executor mkvmerge.Executor

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			LogDir: cfg.Logging.Dir,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger.With(logging.String("session_id", uuid.NewString()))
	})
	return c.logger, c.loggerErr
}

// newClient builds an mkvmerge client from the resolved configuration.
func (c *commandContext) newClient() (*mkvmerge.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	opts := []mkvmerge.Option{mkvmerge.WithLogger(logger)}
	if cfg.Mkvmerge.TimeoutSeconds > 0 {
		opts = append(opts, mkvmerge.WithTimeout(time.Duration(cfg.Mkvmerge.TimeoutSeconds)*time.Second))
	}
	if c.executor != nil {
		opts = append(opts, mkvmerge.WithExecutor(c.executor))
	}
	return mkvmerge.New(cfg.Mkvmerge.Binary, opts...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
