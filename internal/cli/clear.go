package cli

import (
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <selector>",
	Short: "Clear an input element",
	Long:  "Empties the value of the first editable element matching the selector.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

func init() {
	addLocatorFlags(clearCmd)
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	el, err := s.FindElement(ctx, locator(cmd, args[0]))
	if err != nil {
		return outputErr(err)
	}
	if err := el.Clear(ctx); err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}
