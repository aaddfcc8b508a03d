package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_Profiles(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	tests := []struct {
		name      string
		profile   Profile
		wantDebug bool
		wantWarn  bool
	}{
		{"runtime", ProfileRuntime, false, true},
		{"debug", ProfileDebug, true, true},
		{"test", ProfileTest, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tc.profile, &buf, true)

			log.Debug().Msg("debug-line")
			log.Warn().Msg("warn-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tc.wantDebug {
				t.Errorf("debug logged = %v, want %v (%q)", got, tc.wantDebug, out)
			}
			if got := strings.Contains(out, "warn-line"); got != tc.wantWarn {
				t.Errorf("warn logged = %v, want %v (%q)", got, tc.wantWarn, out)
			}
		})
	}
}

func TestNew_EnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")

	var buf bytes.Buffer
	log := New(ProfileRuntime, &buf, true)
	log.Debug().Str("addr", "localhost:4444").Msg("dial")

	if !strings.Contains(buf.String(), "addr=localhost:4444") {
		t.Errorf("output = %q, want structured field", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.NoLevel, false},
		{"DEBUG", zerolog.DebugLevel, true},
		{" warning ", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.NoLevel, false},
	}
	for _, tc := range tests {
		got, ok := parseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("parseLevel(%q) = %v, %v, want %v, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
