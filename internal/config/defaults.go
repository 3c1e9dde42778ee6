package config

const (
	defaultConfigPath    = "~/.config/notarycheck/config.toml"
	projectConfigName    = "notarycheck.toml"
	defaultStateFile     = ".notarization_id"
	defaultEnvFile       = ".env"
	defaultNotaryBinary  = "xcrun"
	defaultNotaryVerbose = true
	defaultNotaryTimeout = 0
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Environment variables consulted when the matching setting is blank.
const (
	EnvAppleID             = "MANUAL_APPLE_ID"
	EnvAppSpecificPassword = "MANUAL_APPLE_APP_SPECIFIC_PASSWORD"
	EnvAppleIDPassword     = "MANUAL_APPLE_ID_PASSWORD"
	EnvTeamID              = "MANUAL_APPLE_TEAM_ID"
	EnvGitHubOutput        = "GITHUB_OUTPUT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateFile: defaultStateFile,
			EnvFile:   defaultEnvFile,
		},
		NotaryTool: NotaryTool{
			Binary:         defaultNotaryBinary,
			TimeoutSeconds: defaultNotaryTimeout,
			Verbose:        defaultNotaryVerbose,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
