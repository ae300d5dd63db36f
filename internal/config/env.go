package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overlays LEXSTORM_* environment variables onto c. String
// settings take the value as-is, empty included; numeric and boolean
// settings are parsed and malformed values are reported rather than
// silently dropped.
func ApplyEnv(c *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	str("LEXSTORM_THEME", &c.Theme)
	str("LEXSTORM_COLOR", &c.Color)
	str("LEXSTORM_PROMPT", &c.Prompt)
	str("LEXSTORM_CONTINUATION", &c.Continuation)
	str("LEXSTORM_HISTORY_FILE", &c.HistoryFile)
	str("LEXSTORM_THEME_DIR", &c.ThemeDir)
	str("LEXSTORM_LOG_FILE", &c.LogFile)
	str("LEXSTORM_LOG_LEVEL", &c.LogLevel)

	if v, ok := os.LookupEnv("LEXSTORM_HISTORY_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEXSTORM_HISTORY_SIZE: invalid count %q", v)
		}
		c.HistorySize = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"LEXSTORM_LIST", &c.List},
		{"LEXSTORM_DEPTH", &c.Depth},
		{"LEXSTORM_WATCH_THEMES", &c.WatchThemes},
	}
	for _, b := range bools {
		v, ok := os.LookupEnv(b.key)
		if !ok {
			continue
		}
		parsed, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	return nil
}

// parseBool accepts the usual spellings on both sides.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
