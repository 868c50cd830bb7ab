package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db
  port: 5432
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
business:
  delete_policy: cascade
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "billing_events", cfg.Kafka.Topic.BillingEvents)
	assert.Equal(t, DeletePolicyCascade, cfg.Business.DeletePolicy)
	assert.Equal(t, 5, cfg.Business.MaxRetryCount)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, DeletePolicyRestrict, cfg.Business.DeletePolicy)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("BILLING_SERVER_PORT", "7000")
	t.Setenv("BILLING_AUTH_USERNAME", "ops")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "ops", cfg.Auth.Username)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"driver":        "database:\n  driver: oracle\n",
		"delete policy": "business:\n  delete_policy: orphan\n",
		"kafka brokers": "kafka:\n  enabled: true\n  brokers: []\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
