package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are not checked
// here; commands that contact the notary service call MissingCredentials.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNotaryTool(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateFile) == "" {
		return errors.New("paths.state_file must be set")
	}
	return nil
}

func (c *Config) validateNotaryTool() error {
	if strings.TrimSpace(c.NotaryTool.Binary) == "" {
		return errors.New("notarytool.binary must be set")
	}
	if c.NotaryTool.TimeoutSeconds < 0 {
		return errors.New("notarytool.timeout_seconds must be >= 0 (0 disables the timeout)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
