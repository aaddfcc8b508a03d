package cli

import (
	"github.com/spf13/cobra"
)

var clickCmd = &cobra.Command{
	Use:   "click <selector>",
	Short: "Click an element",
	Long: `Clicks the first element matching the CSS selector. The server scrolls
it into view first and fails with "element click intercepted" if another
element would receive the click.

Selector examples:
  click "#submit"                       # By ID
  click "form#login button"             # Nested selector
  click "[data-testid=login-btn]"       # By test ID
  click --xpath "//a[text()='Next']"    # By XPath`,
	Args: cobra.ExactArgs(1),
	RunE: runClick,
}

func init() {
	addLocatorFlags(clickCmd)
	rootCmd.AddCommand(clickCmd)
}

func runClick(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	el, err := s.FindElement(ctx, locator(cmd, args[0]))
	if err != nil {
		return outputErr(err)
	}
	if err := el.Click(ctx); err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}
