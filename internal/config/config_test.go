package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deployment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  hostname: "127.0.0.1"
  port: 9443
  max_body_bytes: 2048
audit:
  enabled: true
database:
  audit:
    hostname: db.internal
    database: audits
compliance_api:
  url: ""
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9443", cfg.Server.GetServerAddress())
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "db.internal", cfg.Database.Audit.Hostname)
	assert.Equal(t, 3306, cfg.Database.Audit.Port, "unset values fall back to defaults")
	assert.False(t, cfg.ComplianceAPI.IsEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Same(t, cfg, Get())
}

func TestLoad_Defaults(t *testing.T) {
	// No deployment.yaml in the lookup paths of a fresh temp dir
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, DefaultComplianceAPIURL, cfg.ComplianceAPI.URL)
	assert.True(t, cfg.ComplianceAPI.IsEnabled())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 3000\n")
	t.Setenv("CONSENT_VALIDATOR_SERVER_PORT", "8081")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:        ServerConfig{Port: 3000, MaxBodyBytes: 1024},
			ComplianceAPI: ComplianceAPIConfig{URL: DefaultComplianceAPIURL, Timeout: time.Second},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, expectedErr: "invalid server port"},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, expectedErr: "invalid server port"},
		{name: "body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, expectedErr: "invalid max body size"},
		{
			name: "audit without hostname",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Database.Audit.Database = "audits"
			},
			expectedErr: "database hostname is required",
		},
		{
			name: "audit without database",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Database.Audit.Hostname = "localhost"
			},
			expectedErr: "database name is required",
		},
		{name: "compliance timeout", mutate: func(c *Config) { c.ComplianceAPI.Timeout = 0 }, expectedErr: "timeout must be positive"},
		{
			name: "disabled compliance ignores timeout",
			mutate: func(c *Config) {
				c.ComplianceAPI.URL = ""
				c.ComplianceAPI.Timeout = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	d := DatabaseConfig{User: "root", Password: "secret", Hostname: "db", Port: 3306, Database: "audits"}
	assert.Equal(t, "root:secret@tcp(db:3306)/audits?parseTime=true&multiStatements=true", d.GetDSN())
}
