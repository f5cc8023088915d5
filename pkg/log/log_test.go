package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/christophe-duc/mediathread/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProduction(t *testing.T) {
	t.Setenv("DEBUG", "")
	log := NewLogger(&config.AppConfig{Version: "v1"})

	assert.Equal(t, logrus.ErrorLevel, log.Logger.GetLevel())
	assert.Equal(t, "v1", log.Data["version"])
	assert.Equal(t, false, log.Data["debug"])
}

func TestNewLoggerDevelopmentWritesToConfigDir(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	dir := t.TempDir()
	log := NewLogger(&config.AppConfig{Debug: true, ConfigDir: dir})

	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())
	log.Info("hello")

	content, err := os.ReadFile(filepath.Join(dir, "development.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hello"`)
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "not-a-level")
	assert.Equal(t, logrus.DebugLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, getLogLevel())
}
