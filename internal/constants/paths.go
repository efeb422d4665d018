package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.buildwatch/logs/buildwatch.log
	CLILogFileName = "buildwatch.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the configuration file in the buildwatch home directory.
	GlobalConfigName = "config.yaml"

	// EnvPrefix is the prefix of environment variables read by the configuration layer.
	EnvPrefix = "BUILDWATCH"

	// HomeEnvVar overrides the buildwatch home directory.
	HomeEnvVar = "BUILDWATCH_HOME"
)
