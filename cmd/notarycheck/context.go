package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"notarycheck/internal/config"
	"notarycheck/internal/services/notarytool"
)

type commandContext struct {
	configFlag *string
	toolOpts   []notarytool.Option

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string, toolOpts []notarytool.Option) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		toolOpts:   toolOpts,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// newNotaryClient builds a notarytool client from cfg plus any injected options.
func (c *commandContext) newNotaryClient(cfg *config.Config) (*notarytool.Client, error) {
	opts := append([]notarytool.Option{notarytool.WithVerbose(cfg.NotaryTool.Verbose)}, c.toolOpts...)
	return notarytool.New(cfg.NotaryTool.Binary, cfg.NotaryTool.TimeoutSeconds, opts...)
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
