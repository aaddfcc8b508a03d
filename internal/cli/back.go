package cli

import (
	"github.com/spf13/cobra"
)

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Navigate to previous page",
	Long:  "Goes back one page in the session's history and prints the page it lands on. At the start of history the browser stays put.",
	Args:  cobra.NoArgs,
	RunE:  runBack,
}

func init() {
	rootCmd.AddCommand(backCmd)
}

func runBack(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	if err := s.Back(ctx); err != nil {
		return outputErr(err)
	}
	return outputPage(ctx, s)
}
