package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envLookup resolves a variable from the process environment first and the
// dotenv file second. Blank values count as unset.
type envLookup func(key string) string

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	lookup, err := c.loadEnvFile()
	if err != nil {
		return err
	}
	c.normalizeCredentials(lookup)
	if err := c.normalizeGitHubOutput(lookup); err != nil {
		return err
	}
	c.normalizeNotaryTool()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateFile) == "" {
		c.Paths.StateFile = defaultStateFile
	}
	if c.Paths.StateFile, err = expandPath(strings.TrimSpace(c.Paths.StateFile)); err != nil {
		return fmt.Errorf("paths.state_file: %w", err)
	}
	if c.Paths.EnvFile, err = expandPath(strings.TrimSpace(c.Paths.EnvFile)); err != nil {
		return fmt.Errorf("paths.env_file: %w", err)
	}
	return nil
}

func (c *Config) loadEnvFile() (envLookup, error) {
	var fileValues map[string]string
	if c.Paths.EnvFile != "" {
		values, err := godotenv.Read(c.Paths.EnvFile)
		switch {
		case err == nil:
			fileValues = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("paths.env_file: read %s: %w", c.Paths.EnvFile, err)
		}
	}
	return func(key string) string {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
		return strings.TrimSpace(fileValues[key])
	}, nil
}

func (c *Config) normalizeCredentials(lookup envLookup) {
	c.Credentials.AppleID = strings.TrimSpace(c.Credentials.AppleID)
	if c.Credentials.AppleID == "" {
		c.Credentials.AppleID = lookup(EnvAppleID)
	}
	c.Credentials.Password = strings.TrimSpace(c.Credentials.Password)
	if c.Credentials.Password == "" {
		c.Credentials.Password = lookup(EnvAppSpecificPassword)
	}
	if c.Credentials.Password == "" {
		c.Credentials.Password = lookup(EnvAppleIDPassword)
	}
	c.Credentials.TeamID = strings.TrimSpace(c.Credentials.TeamID)
	if c.Credentials.TeamID == "" {
		c.Credentials.TeamID = lookup(EnvTeamID)
	}
}

func (c *Config) normalizeGitHubOutput(lookup envLookup) error {
	c.Paths.GitHubOutput = strings.TrimSpace(c.Paths.GitHubOutput)
	if c.Paths.GitHubOutput == "" {
		c.Paths.GitHubOutput = lookup(EnvGitHubOutput)
	}
	var err error
	if c.Paths.GitHubOutput, err = expandPath(c.Paths.GitHubOutput); err != nil {
		return fmt.Errorf("paths.github_output: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotaryTool() {
	c.NotaryTool.Binary = strings.TrimSpace(c.NotaryTool.Binary)
	if c.NotaryTool.Binary == "" {
		c.NotaryTool.Binary = defaultNotaryBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
