package cli

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/cli/format"
)

var evalCmd = &cobra.Command{
	Use:   "eval <script>",
	Short: "Evaluate JavaScript in the browser",
	Long: `Runs JavaScript in the current page and prints the result.

A script without a return statement is treated as an expression, so
"eval document.title" runs "return document.title".

With --async the script is run as-is and must call the callback passed as
its last argument:
  eval --async 'setTimeout(() => arguments[0](42), 100)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().Bool("async", false, "Wait for the script to invoke its callback")
	evalCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Client-side timeout for the command")
	rootCmd.AddCommand(evalCmd)
}

// scriptBody turns a bare expression into a function body.
func scriptBody(expr string) string {
	trimmed := strings.TrimSpace(expr)
	if strings.Contains(trimmed, "return") {
		return trimmed
	}
	return "return " + strings.TrimSuffix(trimmed, ";") + ";"
}

func runEval(cmd *cobra.Command, args []string) error {
	async, _ := cmd.Flags().GetBool("async")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	// Join all args to form the script (allows shell-friendly use without quotes)
	script := strings.Join(args, " ")

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), timeout)
	defer cancel()

	var value json.RawMessage
	if async {
		value, err = s.ExecuteAsync(ctx, script)
	} else {
		value, err = s.ExecuteSync(ctx, scriptBody(script))
	}
	if err != nil {
		return outputErr(err)
	}

	if JSONOutput {
		return outputSuccess(map[string]any{"value": value})
	}
	return format.EvalResult(os.Stdout, value)
}
