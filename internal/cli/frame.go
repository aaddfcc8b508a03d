package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var frameCmd = &cobra.Command{
	Use:   "frame <index|selector|parent>",
	Short: "Switch into a frame",
	Long: `Switches the browsing context into a frame, or back out of one.

  frame 0                 # First frame of the current document
  frame "iframe#editor"   # Frame held by the element
  frame parent            # Back to the enclosing document`,
	Args: cobra.ExactArgs(1),
	RunE: runFrame,
}

func init() {
	addLocatorFlags(frameCmd)
	rootCmd.AddCommand(frameCmd)
}

func runFrame(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	target := args[0]
	if target == "parent" {
		err = s.SwitchToParentFrame(ctx)
	} else if index, convErr := strconv.Atoi(target); convErr == nil {
		err = s.SwitchToFrame(ctx, index)
	} else {
		el, ferr := s.FindElement(ctx, locator(cmd, target))
		if ferr != nil {
			return outputErr(ferr)
		}
		err = s.SwitchToFrameElement(ctx, el)
	}
	if err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}
