package view

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("info"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelSilent, ParseLogLevel(""))
	assert.Equal(t, LogLevelSilent, ParseLogLevel("loud"))
}

func TestNewLoggerLevels(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	NewLogger(&buf, LogLevelInfo).Debug("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, LogLevelInfo).Info("shown", "k", 1)
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewLogger(&buf, LogLevelSilent).Warn("quiet")
	assert.Empty(t, buf.String())
}

func TestErrorf(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "Error! bad thing 3", Errorf("bad thing %d", 3))
}
