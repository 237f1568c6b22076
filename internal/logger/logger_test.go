package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatAndLevel(t *testing.T) {
	log := New(Options{Level: "debug", Production: true})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = New(Options{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNew_WritesToRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "api.log")

	log := New(Options{Level: "info", Format: "json", File: file, MaxSizeMB: 1})
	Component(log, "test").Info("hello")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
