package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/consent-policy-validator/internal/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.LoggingConfig
		expectedLevel logrus.Level
		textFormatter bool
	}{
		{name: "defaults", cfg: config.LoggingConfig{}, expectedLevel: logrus.InfoLevel},
		{name: "debug json", cfg: config.LoggingConfig{Level: "debug", Format: "json"}, expectedLevel: logrus.DebugLevel},
		{name: "warn text", cfg: config.LoggingConfig{Level: "warn", Format: "TEXT", Output: "stderr"}, expectedLevel: logrus.WarnLevel, textFormatter: true},
		{name: "bad level", cfg: config.LoggingConfig{Level: "loud"}, expectedLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLevel, logger.GetLevel())
			_, isText := logger.Formatter.(*logrus.TextFormatter)
			assert.Equal(t, tt.textFormatter, isText)
		})
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validator.log")
	logger, err := NewLogger(config.LoggingConfig{Output: path})
	require.NoError(t, err)

	logger.WithField("schema_version", "v1.1").Info("validated")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"schema_version":"v1.1"`)
}

func TestNewLogger_UnwritableOutput(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Output: filepath.Join(t.TempDir(), "missing", "dir", "out.log")})
	assert.Error(t, err)
}
