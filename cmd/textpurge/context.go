package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"textpurge/internal/config"
	"textpurge/internal/logging"
)

type commandContext struct {
	configFlag    *string
	thresholdFlag *float64
	thresholdSet  bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, thresholdFlag *float64) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		thresholdFlag: thresholdFlag,
	}
}

// ensureConfig loads the configuration once and applies flag overrides.
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
		if c.thresholdSet && c.thresholdFlag != nil {
			if err := config.ValidateThreshold(*c.thresholdFlag); err != nil {
				c.configErr = fmt.Errorf("--threshold: %w", err)
				return
			}
			cfg.Search.Threshold = *c.thresholdFlag
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
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
