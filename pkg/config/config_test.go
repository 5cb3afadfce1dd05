package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

database:
  dsn: "file:test.db"

pipeline:
  workers: 8
  queue_size: 512

schedule:
  digest_poll: 30s
  feedback_interval: 5m

embedding:
  enabled: true
  endpoint: https://api.example.com/v1
  api_key: test-key
  model: test-embed
  timeout: 15s

delivery:
  webhook_timeout: 5s
  webhooks:
    secops:
      url: https://hooks.example.com/secops
      secret: shh
  telegram:
    enabled: true
    token: bot-token
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:test.db", cfg.Database.DSN)

		assert.Equal(t, 8, cfg.Pipeline.Workers)
		assert.Equal(t, 512, cfg.Pipeline.QueueSize)

		assert.Equal(t, 30*time.Second, cfg.Schedule.DigestPoll)
		assert.Equal(t, 5*time.Minute, cfg.Schedule.FeedbackInterval)

		assert.True(t, cfg.Embedding.Enabled)
		assert.Equal(t, "https://api.example.com/v1", cfg.Embedding.Endpoint)
		assert.Equal(t, "test-embed", cfg.Embedding.Model)
		assert.Equal(t, 15*time.Second, cfg.Embedding.Timeout)

		assert.Equal(t, 5*time.Second, cfg.Delivery.WebhookTimeout)
		require.Contains(t, cfg.Delivery.Webhooks, "secops")
		assert.Equal(t, "https://hooks.example.com/secops", cfg.Delivery.Webhooks["secops"].URL)
		assert.Equal(t, "shh", cfg.Delivery.Webhooks["secops"].Secret)
		assert.True(t, cfg.Delivery.Telegram.Enabled)
		assert.Equal(t, "bot-token", cfg.Delivery.Telegram.Token)
	})

	t.Run("defaults", func(t *testing.T) {
		configContent := `
database:
  dsn: "file:test.db"
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// check server defaults
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)

		// check database defaults
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)

		// check schedule defaults
		assert.Equal(t, time.Minute, cfg.Schedule.DigestPoll)
		assert.Equal(t, 10*time.Minute, cfg.Schedule.FeedbackInterval)
		assert.Equal(t, 5*time.Minute, cfg.Schedule.FeedbackDebounce)
		assert.Equal(t, 6*time.Hour, cfg.Schedule.PruneInterval)
		assert.Equal(t, 7*24*time.Hour, cfg.Schedule.DedupRetention)
		assert.Equal(t, 30*24*time.Hour, cfg.Schedule.DeliveryRetention)

		// check pipeline defaults
		assert.Equal(t, 4, cfg.Pipeline.Workers)
		assert.Equal(t, 256, cfg.Pipeline.QueueSize)

		// check embedding defaults
		assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
		assert.Equal(t, 30*time.Second, cfg.Embedding.Timeout)

		// check delivery defaults
		assert.Equal(t, 10*time.Second, cfg.Delivery.WebhookTimeout)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("CHATSCOPE_TEST_KEY", "secret-from-env")
		configContent := `
embedding:
  enabled: true
  endpoint: https://api.example.com/v1
  api_key: ${CHATSCOPE_TEST_KEY}
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "secret-from-env", cfg.Embedding.APIKey)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("embedding enabled without endpoint", func(t *testing.T) {
		configContent := `
embedding:
  enabled: true
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "embedding.endpoint is required")
	})

	t.Run("webhook without url", func(t *testing.T) {
		configContent := `
delivery:
  webhooks:
    broken:
      secret: only-a-secret
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), `webhook "broken" url is required`)
	})

	t.Run("telegram enabled without token", func(t *testing.T) {
		configContent := `
delivery:
  telegram:
    enabled: true
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "delivery.telegram.token is required")
	})
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestConfig_GetScheduleConfig(t *testing.T) {
	cfg := &Config{Schedule: ScheduleConfig{DigestPoll: 2 * time.Minute, FeedbackDebounce: time.Minute}}
	sched := cfg.GetScheduleConfig()
	assert.Equal(t, 2*time.Minute, sched.DigestPoll)
	assert.Equal(t, time.Minute, sched.FeedbackDebounce)
}

func TestConfig_GetDeliveryConfig(t *testing.T) {
	cfg := &Config{Delivery: DeliveryConfig{
		WebhookTimeout: 5 * time.Second,
		Webhooks:       map[string]WebhookTarget{"ops": {URL: "https://hooks.example.com/ops"}},
	}}
	del := cfg.GetDeliveryConfig()
	assert.Equal(t, 5*time.Second, del.WebhookTimeout)
	assert.Equal(t, "https://hooks.example.com/ops", del.Webhooks["ops"].URL)
}
