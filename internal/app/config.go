package app

import (
	"os"
	"time"

	"repair_desk/internal/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupEnvironment loads .env and the optional YAML config file, then
// configures zerolog output and log level.
func SetupEnvironment(configPath string) (config.Config, error) {
	// Load .env file if it exists. Variables already set in the process win.
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	configureLogging(cfg)
	if err != nil {
		return cfg, err
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if envErr == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
	return cfg, nil
}

func configureLogging(cfg config.Config) {
	if cfg.Production() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if cfg.Production() {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Str("loglevel", cfg.LogLevel).Msg("Unknown LOGLEVEL, defaulting to info.")
	}
}
