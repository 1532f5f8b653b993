package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store" validate:"required"`
	Queue  QueueConfig  `mapstructure:"queue" validate:"required"`
	AI     AIConfig     `mapstructure:"ai"`
}

// ServerConfig contains the HTTP producer surface settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig contains the remote store credentials and endpoints. The
// consumer key/secret authenticate product API calls; the username and
// application password authenticate media uploads.
type StoreConfig struct {
	URL            string        `mapstructure:"url" validate:"required,url"`
	ConsumerKey    string        `mapstructure:"consumer_key" validate:"required"`
	ConsumerSecret string        `mapstructure:"consumer_secret" validate:"required"`
	Username       string        `mapstructure:"username" validate:"required"`
	AppPassword    string        `mapstructure:"app_password" validate:"required"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UploadTimeout  time.Duration `mapstructure:"upload_timeout"`
}

// QueueConfig contains the upload queue tuning knobs.
type QueueConfig struct {
	Workers     int           `mapstructure:"workers" validate:"required,gte=1,lte=32"`
	StopTimeout time.Duration `mapstructure:"stop_timeout"`
}

// AIConfig contains the optional AI assistance settings. The assistant is
// disabled when the API key is empty.
type AIConfig struct {
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	Model        string `mapstructure:"model"`
}
