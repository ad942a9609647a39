package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWriterHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "engine", log.InfoLevel, false, false, log.TextFormatter)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Info("shown")
	assert.Contains(t, buf.String(), "engine")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	Setup(false)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	log.SetReportCaller(false)
}
