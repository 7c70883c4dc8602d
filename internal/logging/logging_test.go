package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("game", "abc").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"game":"abc"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewEmptyLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", "")
	require.NoError(t, err)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "json")
	require.Error(t, err)
	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}
