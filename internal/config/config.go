package config

import (
	"github.com/aleister1102/newswatch/internal/models"
)

// GlobalConfig contains all configuration sections for one run
type GlobalConfig struct {
	Targets            []models.Target    `json:"targets" yaml:"targets" validate:"required,min=1,dive"`
	HTTPConfig         HTTPConfig         `json:"http_config,omitempty" yaml:"http_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Targets:            []models.Target{},
		HTTPConfig:         NewDefaultHTTPConfig(),
		LogConfig:          NewDefaultLogConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
	}
}

// HTTPConfig controls page fetches
type HTTPConfig struct {
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MaxContentMB       int    `json:"max_content_mb,omitempty" yaml:"max_content_mb,omitempty" validate:"omitempty,min=1"`
	TimeoutSecs        int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultHTTPConfig creates default HTTP configuration
func NewDefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		InsecureSkipVerify: false,
		MaxContentMB:       DefaultMaxContentMB,
		TimeoutSecs:        DefaultHTTPTimeoutSecs,
		UserAgent:          DefaultHTTPUserAgent,
	}
}

// LogConfig defines configuration for logging
type LogConfig struct {
	LogFile       string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,logformat"`
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	MaxLogBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty" validate:"omitempty,min=0"`
	MaxLogSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultLogConfig creates default log configuration
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogFile:       DefaultLogFile,
		LogFormat:     DefaultLogFormat,
		LogLevel:      DefaultLogLevel,
		MaxLogBackups: DefaultMaxLogBackups,
		MaxLogSizeMB:  DefaultMaxLogSizeMB,
	}
}

// NotificationConfig defines the webhook the notifier posts to. The secret part
// of the endpoint is never stored here; it is read from CredentialEnv at startup.
type NotificationConfig struct {
	CredentialEnv    string `json:"credential_env,omitempty" yaml:"credential_env,omitempty"`
	MaxMessageLength int    `json:"max_message_length,omitempty" yaml:"max_message_length,omitempty" validate:"omitempty,min=1"`
	TimeoutSecs      int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	Username         string `json:"username,omitempty" yaml:"username,omitempty"`
	WebhookURL       string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"omitempty,webhookurl"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		CredentialEnv:    DefaultCredentialEnvVar,
		MaxMessageLength: DefaultMaxMessageLength,
		TimeoutSecs:      DefaultNotificationTimeoutSecs,
		Username:         "",
		WebhookURL:       DefaultWebhookURL,
	}
}

// StorageConfig defines where snapshots and the change log live
type StorageConfig struct {
	ChangeLogFile string `json:"change_log_file,omitempty" yaml:"change_log_file,omitempty"`
	SnapshotDir   string `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		ChangeLogFile: DefaultChangeLogFile,
		SnapshotDir:   DefaultSnapshotDir,
	}
}
