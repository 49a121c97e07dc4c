package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", FormatJSON, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Warn().Str(FieldSource, "access.log").Msg("visible")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "visible", event["message"])
	assert.Equal(t, "access.log", event[FieldSource])
	assert.Contains(t, event, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", FormatConsole, &buf)
	require.NoError(t, err)

	logger.Warn().Msg("unable to parse string x")
	assert.Contains(t, buf.String(), "unable to parse string x")
	assert.Contains(t, buf.String(), "WRN")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", FormatJSON, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", FormatJSON, &buf)
	require.NoError(t, err)

	runID := NewRunID()
	_, err = ulid.Parse(runID)
	require.NoError(t, err)

	l := WithRunID(logger, runID)
	l.Info().Msg("started")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, runID, event[FieldRunID])
}
