package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var alertCmd = &cobra.Command{
	Use:   "alert [accept|dismiss|send <text>]",
	Short: "Read or answer a user prompt",
	Long: `Handles alert, confirm and prompt dialogs.

Without arguments, prints the dialog's message.

  alert                 # Print the message
  alert accept          # Press OK
  alert dismiss         # Press Cancel
  alert send "Alice"    # Type into a prompt, then accept with: alert accept`,
	Args:      cobra.RangeArgs(0, 2),
	ValidArgs: []string{"accept", "dismiss", "send"},
	RunE:      runAlert,
}

func init() {
	rootCmd.AddCommand(alertCmd)
}

func runAlert(cmd *cobra.Command, args []string) error {
	action := ""
	if len(args) > 0 {
		action = args[0]
	}
	if (action == "send") != (len(args) == 2) {
		return outputError("usage: alert send <text>")
	}

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	switch action {
	case "":
		text, err := s.AlertText(ctx)
		if err != nil {
			return outputErr(err)
		}
		if JSONOutput {
			return outputSuccess(map[string]any{"text": text})
		}
		_, err = fmt.Fprintln(os.Stdout, text)
		return err
	case "accept":
		err = s.AcceptAlert(ctx)
	case "dismiss":
		err = s.DismissAlert(ctx)
	case "send":
		err = s.SendAlertText(ctx, args[1])
	default:
		return outputError(fmt.Sprintf("unknown alert action %q (use accept, dismiss or send)", action))
	}
	if err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}
