package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 || c.Share.Backend != "memory" || c.Strategy.DrawdownSignal != "entropy" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.MarketData.Timeout != 3*time.Second || !c.MarketData.Live {
		t.Fatalf("unexpected market data defaults: %+v", c.MarketData)
	}
	if c.RateLimit.Capacity != 30 || c.Kafka.Topic != "lipe.events" {
		t.Fatalf("unexpected defaults: %+v %+v", c.RateLimit, c.Kafka)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  allowed_origins: ["https://app.example"]
market_data:
  live: false
  timeout: 1500ms
strategy:
  drawdown_signal: running
share:
  backend: redis
  redis:
    addr: redis:6379
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Environment != "production" || c.Server.Port != 9090 {
		t.Fatalf("unexpected server: %+v", c.Server)
	}
	if c.MarketData.Live || c.MarketData.Timeout != 1500*time.Millisecond {
		t.Fatalf("unexpected market data: %+v", c.MarketData)
	}
	if c.Strategy.DrawdownSignal != "running" || c.Share.Backend != "redis" || c.Share.Redis.Addr != "redis:6379" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.Share.Redis.Prefix != "lipe" || c.Server.ReadTimeout != 10*time.Second {
		t.Fatalf("unset nested fields lost their defaults: %+v", c)
	}
}

func TestLoadWithEnv_Overrides(t *testing.T) {
	path := writeConfig(t, "environment: staging\n")
	t.Setenv("PORT", "7000")
	t.Setenv("HIS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MARKET_DATA_LIVE", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "lipe.audit")
	t.Setenv("SHARE_BACKEND", "redis")
	t.Setenv("PUBLIC_BASE_URL", "https://lipe.example")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 7000 || c.MarketData.Live {
		t.Fatalf("env not applied: %+v", c)
	}
	if len(c.Server.AllowedOrigins) != 2 || c.Server.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", c.Server.AllowedOrigins)
	}
	if !c.Events.Enabled || len(c.Kafka.Brokers) != 2 || c.Kafka.Topic != "lipe.audit" {
		t.Fatalf("unexpected kafka %+v events=%v", c.Kafka, c.Events.Enabled)
	}
	if c.Share.Backend != "redis" || c.Server.PublicBaseURL != "https://lipe.example" {
		t.Fatalf("unexpected share config %+v", c.Share)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty environment": func(c *Config) { c.Environment = "" },
		"port out of range": func(c *Config) { c.Server.Port = 70000 },
		"unknown backend":   func(c *Config) { c.Share.Backend = "sqlite" },
		"unknown drawdown":  func(c *Config) { c.Strategy.DrawdownSignal = "peak" },
		"events no brokers": func(c *Config) { c.Events.Enabled = true },
		"negative capacity": func(c *Config) { c.RateLimit.Capacity = -1 },
		"bad proxy cidr":    func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.1"} },
	}
	for name, mutate := range cases {
		c := Default()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
