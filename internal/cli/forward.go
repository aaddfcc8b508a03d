package cli

import (
	"github.com/spf13/cobra"
)

var forwardCmd = &cobra.Command{
	Use:   "forward",
	Short: "Navigate to next page",
	Long:  "Goes forward one page in the session's history and prints the page it lands on.",
	Args:  cobra.NoArgs,
	RunE:  runForward,
}

func init() {
	rootCmd.AddCommand(forwardCmd)
}

func runForward(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	if err := s.Forward(ctx); err != nil {
		return outputErr(err)
	}
	return outputPage(ctx, s)
}
