package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/newswatch/internal/config"
	"github.com/aleister1102/newswatch/internal/logger"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code. Only startup failures are fatal; a run
// in which every target was skipped still exits 0.
func run() int {
	// Used until the configured logger exists.
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	if err := config.LoadEnvFile(config.DefaultEnvFile, bootLogger); err != nil {
		bootLogger.Error().Err(err).Msg("Could not read env file")
		return 1
	}

	gCfg, err := config.LoadGlobalConfig("", bootLogger)
	if err != nil {
		bootLogger.Error().Err(err).Msg("Could not load configuration")
		return 1
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		bootLogger.Error().Err(err).Msg("Configuration validation failed")
		return 1
	}

	appLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		bootLogger.Error().Err(err).Msg("Could not initialize logger")
		return 1
	}
	defer func() {
		_ = appLogger.Close()
	}()
	zLogger := *appLogger.GetZerolog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch, err := buildOrchestrator(gCfg, config.WebhookCredential(gCfg.NotificationConfig), zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize components")
		return 1
	}

	summary := orch.Run(ctx, gCfg.Targets)
	if summary.Skipped > 0 {
		zLogger.Warn().Int("skipped", summary.Skipped).Msg("Some targets were skipped, see earlier log entries")
	}
	return 0
}
