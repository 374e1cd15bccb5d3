package config

const (
	// Config file discovery
	DefaultConfigFileYAML = "newswatch.yaml"
	DefaultConfigFileJSON = "newswatch.json"
	ConfigPathEnvVar      = "NEWSWATCH_CONFIG"
	MaxConfigFileSize     = 10 * 1024 * 1024

	// HTTP Defaults
	DefaultHTTPUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultHTTPTimeoutSecs = 15
	DefaultMaxContentMB    = 10

	// Storage Defaults
	DefaultSnapshotDir   = "snapshots"
	DefaultChangeLogFile = "diff_history.log"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Notification Defaults
	DefaultWebhookURL              = "https://discord.com/api/webhooks/{key}"
	DefaultCredentialEnvVar        = "NEWSWATCH_WEBHOOK_KEY"
	DefaultNotificationTimeoutSecs = 10
	DefaultMaxMessageLength        = 800
	WebhookKeyPlaceholder          = "{key}"
)
