package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var targetCmd = &cobra.Command{
	Use:   "target [handle]",
	Short: "List, switch, open or close windows",
	Long: `Lists the session's windows and tabs, or switches to one.

Without arguments, lists every window handle; the current one is marked *.
With a handle argument, switches to the window whose handle starts with it.

Flags:
  --new tab|window    Open a new tab or window and switch to it
  --close             Close the current window

Examples:
  wdctl target                # List windows
  wdctl target 9A3E           # Switch by handle prefix
  wdctl target --new tab      # Open and switch to a tab
  wdctl target --close        # Close the current window`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTarget,
}

func init() {
	targetCmd.Flags().String("new", "", "Open a new tab or window")
	targetCmd.Flags().Bool("close", false, "Close the current window")
	targetCmd.MarkFlagsMutuallyExclusive("new", "close")
	rootCmd.AddCommand(targetCmd)
}

func runTarget(cmd *cobra.Command, args []string) error {
	newType, _ := cmd.Flags().GetString("new")
	closeWindow, _ := cmd.Flags().GetBool("close")

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	switch {
	case newType != "":
		typ := webdriver.WindowType(newType)
		if typ != webdriver.Tab && typ != webdriver.Window {
			return outputError("--new takes tab or window")
		}
		handle, _, err := s.NewWindow(ctx, typ)
		if err != nil {
			return outputErr(err)
		}
		if err := s.SwitchToWindow(ctx, handle); err != nil {
			return outputErr(err)
		}
		return outputTargets(handle, []string{handle})

	case closeWindow:
		remaining, err := s.CloseWindow(ctx)
		if err != nil {
			return outputErr(err)
		}
		return outputTargets("", remaining)

	case len(args) == 1:
		handles, err := s.WindowHandles(ctx)
		if err != nil {
			return outputErr(err)
		}
		handle, err := matchHandle(handles, args[0])
		if err != nil {
			return outputErr(err)
		}
		if err := s.SwitchToWindow(ctx, handle); err != nil {
			return outputErr(err)
		}
		return outputPage(ctx, s)
	}

	handles, err := s.WindowHandles(ctx)
	if err != nil {
		return outputErr(err)
	}
	current, err := s.WindowHandle(ctx)
	if err != nil {
		// The current window may have been closed.
		debugf("current window: %v", err)
		current = ""
	}
	return outputTargets(current, handles)
}

// matchHandle returns the single handle starting with prefix.
func matchHandle(handles []string, prefix string) (string, error) {
	var matches []string
	for _, h := range handles {
		if h == prefix {
			return h, nil
		}
		if strings.HasPrefix(h, prefix) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no window matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%d windows match %q", len(matches), prefix)
	}
}

func outputTargets(current string, handles []string) error {
	if JSONOutput {
		return outputSuccess(map[string]any{"current": current, "windows": handles})
	}
	for _, h := range handles {
		mark := " "
		if h == current {
			mark = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", mark, h)
	}
	return nil
}
