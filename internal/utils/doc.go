// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses ConfigurationLoader and LoggerFactory abstractions that integrate
// Viper, dotenv files, environment variables, and zap logging for the CLI.
package utils
