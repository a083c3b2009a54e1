package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
service_name = "nanotrader-fixtures"
environment = "test"

[http]
port = 9000

[database]
driver = "postgres"
dsn = "host=localhost user=nano dbname=nanotrader sslmode=disable"

[redis]
host = "localhost"

[kafka]
brokers = ["localhost:9092"]

[fixtures]
seed_size = 5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Fixtures.SeedSize)
	assert.Equal(t, "GOOG", cfg.Fixtures.QuoteSymbol)
	assert.EqualValues(t, 1, cfg.Fixtures.SentinelAccountID)
	assert.Equal(t, "nanotrader.order.created", cfg.Kafka.OrderTopic)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.KafkaEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadWithDefaultsUsesEnvironment(t *testing.T) {
	t.Setenv("APP_DATABASE_DSN", "nano:nano@tcp(localhost:3306)/nanotrader")
	t.Setenv("APP_FIXTURES_QUOTE_SYMBOL", "VMW")

	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "nano:nano@tcp(localhost:3306)/nanotrader", cfg.Database.DSN)
	assert.Equal(t, "VMW", cfg.Fixtures.QuoteSymbol)
	assert.Equal(t, 10, cfg.Fixtures.SeedSize)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.KafkaEnabled())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ServiceName: "svc",
			HTTP:        HTTPConfig{Port: 8080},
			Database:    DatabaseConfig{Driver: "mysql", DSN: "dsn"},
			Fixtures:    FixturesConfig{SeedSize: 10, QuoteSymbol: "GOOG"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing service name", func(c *Config) { c.ServiceName = "" }},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }},
		{"zero seed size", func(c *Config) { c.Fixtures.SeedSize = 0 }},
		{"missing symbol", func(c *Config) { c.Fixtures.QuoteSymbol = "" }},
		{"ratelimit without redis", func(c *Config) { c.RateLimit.Enabled = true }},
		{"ratelimit without qps", func(c *Config) {
			c.Redis.Host = "localhost"
			c.RateLimit = RateLimitConfig{Enabled: true, QPS: 0, Burst: 10}
		}},
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "dev", cfg.Environment)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateMemoryDriverNeedsNoDSN(t *testing.T) {
	cfg := Config{
		ServiceName: "svc",
		HTTP:        HTTPConfig{Port: 8080},
		Database:    DatabaseConfig{Driver: "memory"},
		Fixtures:    FixturesConfig{SeedSize: 10, QuoteSymbol: "GOOG"},
	}
	assert.NoError(t, cfg.Validate())
}
