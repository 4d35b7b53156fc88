// ABOUTME: Tests for logger construction
// ABOUTME: Table-driven with testify
package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("debug", "json", &buf)
	require.NoError(t, err)

	log.WithFields(logrus.Fields{"lead_id": "abc"}).Debug("completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "completed", entry["msg"])
	assert.Equal(t, "abc", entry["lead_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewDefaults(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	assert.Empty(t, buf.String())
	log.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", "text", nil)
	assert.Error(t, err)

	_, err = New("info", "xml", nil)
	assert.Error(t, err)
}
