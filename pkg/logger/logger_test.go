package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Console: &buf})
	defer log.Close()

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)

	assert.False(t, log.IsDebugEnabled())
	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Console: &buf, Debug: true})
	defer log.Close()

	log.Debug("args: %v", []string{"10.0", "false"})

	assert.True(t, log.IsDebugEnabled())
	assert.Contains(t, buf.String(), "args: [10.0 false]")
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxmaker.log")

	var buf bytes.Buffer
	log := logger.New(logger.Options{
		Console:    &buf,
		File:       path,
		MaxSizeMB:  10,
		MaxBackups: 10,
	})
	log.Info("127.0.0.1 - box-20240101_120000_000001.pdf - 10.0 5.0")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "box-20240101_120000_000001.pdf")
	assert.Contains(t, buf.String(), "box-20240101_120000_000001.pdf")
}

func TestCloseWithoutFile(t *testing.T) {
	assert.NoError(t, logger.Discard().Close())
}

func TestHighlight(t *testing.T) {
	log := logger.Discard()

	noColor := color.NoColor
	t.Cleanup(func() { color.NoColor = noColor })

	color.NoColor = true
	assert.Equal(t, "http://127.0.0.1:8080", log.Highlight("http://127.0.0.1:8080"))

	color.NoColor = false
	highlighted := log.Highlight("http://127.0.0.1:8080")
	assert.Contains(t, highlighted, "http://127.0.0.1:8080")
	assert.Contains(t, highlighted, "\x1b[")
}
