package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("CSACALC_YEAR", "")
	t.Setenv("CSACALC_TABLES", "")
	t.Setenv("CSACALC_FORMAT", "")
	t.Setenv("CSACALC_LOG_LEVEL", "")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 0, s.Year)
	assert.Equal(t, "", s.Tables)
	assert.Equal(t, "console", s.Format)
	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadSettings_FromEnvironment(t *testing.T) {
	t.Setenv("CSACALC_YEAR", "2025")
	t.Setenv("CSACALC_TABLES", "/tmp/tables.yaml")
	t.Setenv("CSACALC_FORMAT", "json")
	t.Setenv("CSACALC_LOG_LEVEL", "debug")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 2025, s.Year)
	assert.Equal(t, "/tmp/tables.yaml", s.Tables)
	assert.Equal(t, "json", s.Format)
	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadSettings_EmptyMixedWithSet(t *testing.T) {
	t.Setenv("CSACALC_YEAR", "")
	t.Setenv("CSACALC_TABLES", "")
	t.Setenv("CSACALC_FORMAT", "json")
	t.Setenv("CSACALC_LOG_LEVEL", "")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 0, s.Year)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Run("year", func(t *testing.T) {
		t.Setenv("CSACALC_YEAR", "next")
		_, err := LoadSettings()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CSACALC_YEAR")
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("CSACALC_YEAR", "")
		t.Setenv("CSACALC_LOG_LEVEL", "chatty")
		_, err := LoadSettings()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
