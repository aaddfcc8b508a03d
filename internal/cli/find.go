package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var findCmd = &cobra.Command{
	Use:   "find <selector>",
	Short: "Find elements and print their text",
	Long: `Finds every element matching a CSS selector (or XPath with --xpath) and
prints one line per match: the element ID and its rendered text, or the
named attribute with --attr.

Examples:
  find "nav a"                        # Text of every nav link
  find "nav a" --attr href            # Their targets
  find --xpath "//button[@type]"      # XPath locator
  find --json "h1" | jq -r '.data.elements[0].id'`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().String("attr", "", "Print this attribute instead of the text")
	findCmd.Flags().IntP("limit", "l", 0, "Limit number of matches (default: all)")
	addLocatorFlags(findCmd)
	rootCmd.AddCommand(findCmd)
}

// addLocatorFlags adds the flags that pick a locator strategy.
func addLocatorFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("xpath", "x", false, "Treat the selector as XPath")
	cmd.Flags().Bool("link-text", false, "Match links by exact text")
}

// locator turns a selector argument into a locator per the command's flags.
func locator(cmd *cobra.Command, selector string) webdriver.By {
	if xpath, _ := cmd.Flags().GetBool("xpath"); xpath {
		return webdriver.XPath(selector)
	}
	if linkText, _ := cmd.Flags().GetBool("link-text"); linkText {
		return webdriver.LinkText(selector)
	}
	return webdriver.CSS(selector)
}

type foundElement struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func runFind(cmd *cobra.Command, args []string) error {
	attr, _ := cmd.Flags().GetString("attr")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	elements, err := s.FindElements(ctx, locator(cmd, args[0]))
	if err != nil {
		return outputErr(err)
	}
	if len(elements) == 0 {
		return outputError(fmt.Sprintf("no elements match %q", args[0]))
	}
	if limit > 0 && len(elements) > limit {
		elements = elements[:limit]
	}

	found := make([]foundElement, 0, len(elements))
	for _, el := range elements {
		var v string
		if attr != "" {
			v, err = el.Attribute(ctx, attr)
		} else {
			v, err = el.Text(ctx)
		}
		if err != nil {
			return outputErr(err)
		}
		found = append(found, foundElement{ID: el.ID, Value: v})
	}

	if JSONOutput {
		return outputSuccess(map[string]any{"elements": found, "count": len(found)})
	}
	for _, f := range found {
		fmt.Fprintf(os.Stdout, "%s\t%s\n", f.ID, f.Value)
	}
	return nil
}
