package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when no configuration file can be located.
var ErrConfigNotFound = errors.New("configuration file not found")

// GetConfigPath determines the configuration file path.
// Priority:
// 1. providedPath, when non-empty
// 2. NEWSWATCH_CONFIG environment variable
// 3. newswatch.yaml / newswatch.json in the current working directory
// 4. newswatch.yaml / newswatch.json in the executable's directory
// An explicitly provided path is returned even if it does not exist, so the
// caller reports the path the operator asked for.
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		return providedPath
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}

	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{DefaultConfigFileYAML, DefaultConfigFileJSON}
	locations := []string{}

	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// Unlike optional settings, the target list has no default: a missing file is
// reported as ErrConfigNotFound and the run must not start.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return nil, ErrConfigNotFound
	}

	fileManager := common.NewFileManager(logger)
	data, err := fileManager.ReadFile(filePath, MaxConfigFileSize)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.WrapErrorf(ErrConfigNotFound, "config file '%s'", filePath)
		}
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	applyDefaults(cfg)

	logger.Debug().Str("path", filePath).Int("targets", len(cfg.Targets)).Msg("Configuration file loaded")
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// applyDefaults backfills numeric and string settings explicitly set to zero.
func applyDefaults(cfg *GlobalConfig) {
	defaults := NewDefaultGlobalConfig()

	if cfg.HTTPConfig.TimeoutSecs == 0 {
		cfg.HTTPConfig.TimeoutSecs = defaults.HTTPConfig.TimeoutSecs
	}
	if cfg.HTTPConfig.MaxContentMB == 0 {
		cfg.HTTPConfig.MaxContentMB = defaults.HTTPConfig.MaxContentMB
	}
	if cfg.HTTPConfig.UserAgent == "" {
		cfg.HTTPConfig.UserAgent = defaults.HTTPConfig.UserAgent
	}
	if cfg.NotificationConfig.TimeoutSecs == 0 {
		cfg.NotificationConfig.TimeoutSecs = defaults.NotificationConfig.TimeoutSecs
	}
	if cfg.NotificationConfig.MaxMessageLength == 0 {
		cfg.NotificationConfig.MaxMessageLength = defaults.NotificationConfig.MaxMessageLength
	}
	if cfg.NotificationConfig.CredentialEnv == "" {
		cfg.NotificationConfig.CredentialEnv = defaults.NotificationConfig.CredentialEnv
	}
	if cfg.NotificationConfig.WebhookURL == "" {
		cfg.NotificationConfig.WebhookURL = defaults.NotificationConfig.WebhookURL
	}
	if cfg.StorageConfig.SnapshotDir == "" {
		cfg.StorageConfig.SnapshotDir = defaults.StorageConfig.SnapshotDir
	}
	if cfg.StorageConfig.ChangeLogFile == "" {
		cfg.StorageConfig.ChangeLogFile = defaults.StorageConfig.ChangeLogFile
	}
}

// fileExists reports whether filename exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
