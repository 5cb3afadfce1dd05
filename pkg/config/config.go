package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:chatscope.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Periodic task configuration"`

	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline" jsonschema:"description=Message evaluation pipeline configuration"`

	Embedding EmbeddingConfig `yaml:"embedding" json:"embedding" jsonschema:"description=Embedding backend for semantic scoring"`

	Delivery DeliveryConfig `yaml:"delivery" json:"delivery" jsonschema:"description=Delivery sinks configuration"`
}

// ScheduleConfig holds intervals for the periodic background tasks
type ScheduleConfig struct {
	DigestPoll        time.Duration `yaml:"digest_poll" json:"digest_poll" jsonschema:"default=1m,description=How often due digest schedules are checked"`
	FeedbackInterval  time.Duration `yaml:"feedback_interval" json:"feedback_interval" jsonschema:"default=10m,description=Periodic feedback batch drain interval"`
	FeedbackDebounce  time.Duration `yaml:"feedback_debounce" json:"feedback_debounce" jsonschema:"default=5m,description=Debounce delay after a feedback trigger"`
	PruneInterval     time.Duration `yaml:"prune_interval" json:"prune_interval" jsonschema:"default=6h,description=Retention pruning interval"`
	DedupRetention    time.Duration `yaml:"dedup_retention" json:"dedup_retention" jsonschema:"default=168h,description=How long alerted-message dedup entries are kept"`
	DeliveryRetention time.Duration `yaml:"delivery_retention" json:"delivery_retention" jsonschema:"default=720h,description=How long delivery history is kept"`
}

// PipelineConfig holds message evaluation settings
type PipelineConfig struct {
	Workers   int `yaml:"workers" json:"workers" jsonschema:"default=4,description=Evaluation worker shards, messages from one source stay on one shard"`
	QueueSize int `yaml:"queue_size" json:"queue_size" jsonschema:"default=256,description=Per-shard intake queue size"`
}

// EmbeddingConfig holds the embedding backend configuration
type EmbeddingConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable semantic scoring"`
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model    string        `yaml:"model" json:"model" jsonschema:"default=text-embedding-3-small,description=Embedding model name"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// WebhookTarget is one registered webhook service. The registry is
// read-only for the pipeline, targets are referenced by name from
// profile rules.
type WebhookTarget struct {
	URL    string `yaml:"url" json:"url" jsonschema:"required,description=Webhook endpoint URL"`
	Secret string `yaml:"secret" json:"secret" jsonschema:"description=Shared secret for HMAC payload signing"`
}

// TelegramConfig holds the send-only telegram notifier settings
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable telegram dm/channel delivery"`
	Token   string `yaml:"token" json:"token" jsonschema:"description=Bot API token (can use environment variable)"`
}

// DeliveryConfig holds sink settings
type DeliveryConfig struct {
	WebhookTimeout time.Duration            `yaml:"webhook_timeout" json:"webhook_timeout" jsonschema:"default=10s,description=Per-call webhook timeout"`
	Webhooks       map[string]WebhookTarget `yaml:"webhooks" json:"webhooks" jsonschema:"description=Webhook service registry, name to target"`
	Telegram       TelegramConfig           `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram notifier configuration"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:chatscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.DigestPoll == 0 {
		cfg.Schedule.DigestPoll = time.Minute
	}
	if cfg.Schedule.FeedbackInterval == 0 {
		cfg.Schedule.FeedbackInterval = 10 * time.Minute
	}
	if cfg.Schedule.FeedbackDebounce == 0 {
		cfg.Schedule.FeedbackDebounce = 5 * time.Minute
	}
	if cfg.Schedule.PruneInterval == 0 {
		cfg.Schedule.PruneInterval = 6 * time.Hour
	}
	if cfg.Schedule.DedupRetention == 0 {
		cfg.Schedule.DedupRetention = 7 * 24 * time.Hour
	}
	if cfg.Schedule.DeliveryRetention == 0 {
		cfg.Schedule.DeliveryRetention = 30 * 24 * time.Hour
	}

	// set defaults for pipeline
	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = 4
	}
	if cfg.Pipeline.QueueSize == 0 {
		cfg.Pipeline.QueueSize = 256
	}

	// set defaults for embedding
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 30 * time.Second
	}

	// set defaults for delivery
	if cfg.Delivery.WebhookTimeout == 0 {
		cfg.Delivery.WebhookTimeout = 10 * time.Second
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate embedding config
	if cfg.Embedding.Enabled {
		if cfg.Embedding.Endpoint == "" {
			return fmt.Errorf("embedding.endpoint is required when embedding is enabled")
		}
		if cfg.Embedding.Model == "" {
			return fmt.Errorf("embedding.model is required when embedding is enabled")
		}
	}

	// validate delivery config
	if cfg.Delivery.WebhookTimeout < time.Second {
		return fmt.Errorf("delivery.webhook_timeout must be at least 1 second")
	}
	for name, target := range cfg.Delivery.Webhooks {
		if name == "" {
			return fmt.Errorf("webhook service name must not be empty")
		}
		if target.URL == "" {
			return fmt.Errorf("webhook %q url is required", name)
		}
	}
	if cfg.Delivery.Telegram.Enabled && cfg.Delivery.Telegram.Token == "" {
		return fmt.Errorf("delivery.telegram.token is required when telegram is enabled")
	}

	// validate pipeline config
	if cfg.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetScheduleConfig returns periodic task configuration
func (c *Config) GetScheduleConfig() ScheduleConfig {
	return c.Schedule
}

// GetEmbeddingConfig returns embedding backend configuration
func (c *Config) GetEmbeddingConfig() EmbeddingConfig {
	return c.Embedding
}

// GetDeliveryConfig returns delivery sinks configuration
func (c *Config) GetDeliveryConfig() DeliveryConfig {
	return c.Delivery
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
