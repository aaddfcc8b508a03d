package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var readyCmd = &cobra.Command{
	Use:   "ready [selector]",
	Short: "Wait for page or application to be ready",
	Long: `Polls until the page or application is ready.

Page load mode (default):
  Waits for document.readyState to be "complete".

Selector mode:
  Waits for an element matching the CSS selector to appear in the DOM.
  Only checks presence, not visibility or interactivity.

Eval mode:
  Waits for a JavaScript expression to evaluate to a truthy value.

Timeout:
  --timeout duration    Maximum time to wait (default 60s)
  --interval duration   Time between checks (default 250ms)

Examples:
  ready                                   # Page loaded
  ready ".dashboard"                      # Element present
  ready --eval "window.appReady === true" # App-specific flag`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReady,
}

func init() {
	readyCmd.Flags().Duration("timeout", 60*time.Second, "Maximum time to wait")
	readyCmd.Flags().Duration("interval", 250*time.Millisecond, "Time between checks")
	readyCmd.Flags().String("eval", "", "JavaScript expression to evaluate")
	rootCmd.AddCommand(readyCmd)
}

// readyCheck reports whether the awaited condition holds.
type readyCheck func(ctx context.Context) (bool, error)

func runReady(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("interval")
	evalExpr, _ := cmd.Flags().GetString("eval")

	if len(args) == 1 && evalExpr != "" {
		return outputError("use either a selector or --eval, not both")
	}

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}

	var check readyCheck
	switch {
	case len(args) == 1:
		by := webdriver.CSS(args[0])
		check = func(ctx context.Context) (bool, error) {
			els, err := s.FindElements(ctx, by)
			return len(els) > 0, err
		}
	case evalExpr != "":
		check = truthy(s, "return !!("+evalExpr+");")
	default:
		check = truthy(s, `return document.readyState === "complete";`)
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), timeout)
	defer cancel()

	if err := poll(ctx, interval, check); err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}

// truthy returns a check that runs script and expects a boolean.
func truthy(s *webdriver.Session, script string) readyCheck {
	return func(ctx context.Context) (bool, error) {
		v, err := s.ExecuteSync(ctx, script)
		if err != nil {
			return false, err
		}
		var ok bool
		if err := json.Unmarshal(v, &ok); err != nil {
			return false, fmt.Errorf("ready check returned %s", v)
		}
		return ok, nil
	}
}

// poll runs check every interval until it passes, fails or ctx ends.
func poll(ctx context.Context, interval time.Duration, check readyCheck) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		ok, err := check(ctx)
		if err != nil {
			return err
		}
		if ok {
			debugf("ready after %d checks", attempt)
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("not ready after %d checks: %w", attempt, ctx.Err())
		case <-ticker.C:
		}
	}
}
