package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, parseLevel("warning"))
	assert.Equal(t, ErrorLevel, parseLevel("error"))
	assert.Equal(t, InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, InfoLevel, parseLevel(""))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn")
	log.SetOutput(&buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown ", 42)
	assert.Contains(t, buf.String(), "shown 42")
	assert.Contains(t, buf.String(), "level=warning")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug")
	log.SetOutput(&buf)

	log.WithFields(Fields{"rows": 3}).Debug("model built")
	assert.Contains(t, buf.String(), "rows=3")
	assert.Contains(t, buf.String(), "model built")
}
