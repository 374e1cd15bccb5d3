package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultEnvFile is read at startup when present. Variables already set in the
// process environment take precedence over it.
const DefaultEnvFile = ".env"

// LoadEnvFile merges the variables of path into the process environment. A
// missing file is not an error.
func LoadEnvFile(path string, logger zerolog.Logger) error {
	if path == "" {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("No env file found")
			return nil
		}
		return err
	}

	logger.Debug().Str("path", path).Msg("Env file loaded")
	return nil
}

// WebhookCredential returns the secret substituted into the webhook URL, or ""
// when notifications are not configured.
func WebhookCredential(cfg NotificationConfig) string {
	envVar := cfg.CredentialEnv
	if envVar == "" {
		envVar = DefaultCredentialEnvVar
	}
	return os.Getenv(envVar)
}
