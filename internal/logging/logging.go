// Package logging builds the zerolog loggers used across wdctl.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the level chosen by the profile.
const EnvLogLevel = "WDCTL_LOG_LEVEL"

// Profile selects logging defaults.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileDebug
	ProfileTest
)

// New returns a console logger writing to w. ProfileTest discards everything.
func New(profile Profile, w io.Writer, noColor bool) zerolog.Logger {
	if profile == ProfileTest {
		return zerolog.Nop()
	}

	level := zerolog.WarnLevel
	if profile == ProfileDebug {
		level = zerolog.DebugLevel
	}
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.NoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.NoLevel, false
	}
}
