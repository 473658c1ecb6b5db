package config

import (
	"cmp"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by LoadSettings
const EnvPrefix = "CSACALC"

const (
	defaultFormat   = "console"
	defaultLogLevel = "info"
)

// Settings are process defaults taken from the environment. Command-line
// flags override them.
type Settings struct {
	Year     int
	Tables   string
	Format   string
	LogLevel string
}

// envSettings is the raw environment. Every field is a string so that a
// variable exported as empty reads the same as one left unset.
type envSettings struct {
	Year     string `envconfig:"YEAR"`
	Tables   string `envconfig:"TABLES"`
	Format   string `envconfig:"FORMAT"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// LoadSettings reads CSACALC_YEAR, CSACALC_TABLES, CSACALC_FORMAT and
// CSACALC_LOG_LEVEL. Empty variables fall back to the defaults.
func LoadSettings() (*Settings, error) {
	var env envSettings
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	s := &Settings{
		Tables:   env.Tables,
		Format:   cmp.Or(env.Format, defaultFormat),
		LogLevel: cmp.Or(env.LogLevel, defaultLogLevel),
	}
	if env.Year != "" {
		year, err := strconv.Atoi(env.Year)
		if err != nil {
			return nil, fmt.Errorf("invalid %s_YEAR %q: %w", EnvPrefix, env.Year, err)
		}
		s.Year = year
	}
	if _, err := s.Level(); err != nil {
		return nil, err
	}
	return s, nil
}

// Level parses the configured log level
func (s *Settings) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	return level, nil
}
