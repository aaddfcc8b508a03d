package main

import (
	"bytes"
	"errors"
	"testing"
)

func TestFormatCobraError(t *testing.T) {
	tests := []struct {
		name string
		err  string
		want string
	}{
		{
			name: "mutually exclusive flags",
			err:  "if any flags in the group [to by] are set none of the others can be; [to by] were all set",
			want: "--to and --by cannot be used together",
		},
		{
			name: "other errors pass through",
			err:  `unknown command "nope" for "wdctl"`,
			want: `unknown command "nope" for "wdctl"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCobraError(errors.New(tt.err)); got != tt.want {
				t.Errorf("formatCobraError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, "boom", false)
	if got := buf.String(); got != "Error: boom\n" {
		t.Errorf("text report = %q", got)
	}

	buf.Reset()
	report(&buf, "boom", true)
	if got := buf.String(); got != "{\"error\":\"boom\",\"ok\":false}\n" {
		t.Errorf("json report = %q", got)
	}
}
