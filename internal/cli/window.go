package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var windowCmd = &cobra.Command{
	Use:   "window [maximize|minimize|fullscreen]",
	Short: "Show or change the window size and position",
	Long: `Prints the current window rectangle, or changes it.

  window                        # Print x,y widthxheight
  window --size 1280x800        # Resize
  window --pos 0,0              # Move
  window maximize               # Maximize, minimize or fullscreen`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"maximize", "minimize", "fullscreen"},
	RunE:      runWindow,
}

func init() {
	windowCmd.Flags().String("size", "", "Resize to WIDTHxHEIGHT")
	windowCmd.Flags().String("pos", "", "Move to x,y")
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	size, _ := cmd.Flags().GetString("size")
	pos, _ := cmd.Flags().GetString("pos")

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	var rect webdriver.WindowRect
	switch {
	case len(args) == 1:
		switch args[0] {
		case "maximize":
			rect, err = s.Maximize(ctx)
		case "minimize":
			rect, err = s.Minimize(ctx)
		case "fullscreen":
			rect, err = s.Fullscreen(ctx)
		default:
			return outputError(fmt.Sprintf("unknown window state %q", args[0]))
		}
	case size != "" || pos != "":
		if rect, err = s.WindowRect(ctx); err != nil {
			return outputErr(err)
		}
		if size != "" {
			var w, h int
			if _, serr := fmt.Sscanf(size, "%dx%d", &w, &h); serr != nil {
				return outputError(fmt.Sprintf("invalid size %q: expected WIDTHxHEIGHT", size))
			}
			rect.Width, rect.Height = w, h
		}
		if pos != "" {
			x, y, perr := parseCoords(pos)
			if perr != nil {
				return outputErr(perr)
			}
			rect.X, rect.Y = x, y
		}
		rect, err = s.SetWindowRect(ctx, rect)
	default:
		rect, err = s.WindowRect(ctx)
	}
	if err != nil {
		return outputErr(err)
	}

	if JSONOutput {
		return outputSuccess(rect)
	}
	_, err = fmt.Fprintf(os.Stdout, "%d,%d %dx%d\n", rect.X, rect.Y, rect.Width, rect.Height)
	return err
}
