package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "")
	require.NoError(t, err)
	logger.Error("should not appear")

	assert.Empty(t, buf.String())
}

func TestNew_DebugWritesToWriter(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "DEBUG")
	require.NoError(t, err)
	logger.Debug("loaded tree")

	assert.Contains(t, buf.String(), "loaded tree")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "warn")
	require.NoError(t, err)
	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty")
	assert.Error(t, err)
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLevel, "info")

	assert.Equal(t, "debug", ResolveLevel(true))
	assert.Equal(t, "info", ResolveLevel(false))

	t.Setenv(EnvLevel, "")
	assert.Equal(t, "", ResolveLevel(false))
}
