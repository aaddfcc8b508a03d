package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/grantcarthew/wdctl/internal/cli"
)

var exclusiveFlags = regexp.MustCompile(`\[([^\]]+)\] were all set`)

// formatCobraError converts verbose Cobra errors to user-friendly messages.
func formatCobraError(err error) string {
	msg := err.Error()

	// Mutual exclusivity: "if any flags in the group [to by] are set none of the others can be; [to by] were all set"
	if strings.Contains(msg, "none of the others can be") {
		if matches := exclusiveFlags.FindStringSubmatch(msg); len(matches) > 1 {
			flags := strings.Split(matches[1], " ")
			for i := range flags {
				flags[i] = "--" + flags[i]
			}
			return fmt.Sprintf("%s cannot be used together", strings.Join(flags, " and "))
		}
	}

	return msg
}

// report writes an error that no command handler has printed yet.
func report(w io.Writer, msg string, jsonOutput bool) {
	if jsonOutput {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":    false,
			"error": msg,
		})
		return
	}
	fmt.Fprintf(w, "Error: %s\n", msg)
}

func main() {
	if err := cli.Execute(); err != nil {
		if !cli.IsPrintedError(err) {
			report(os.Stderr, formatCobraError(err), cli.JSONOutput)
		}
		os.Exit(1)
	}
}
