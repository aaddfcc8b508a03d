package cli

import (
	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var typeCmd = &cobra.Command{
	Use:   "type [selector] <text>",
	Short: "Type text into an element",
	Long: `Types text into an element.

With one argument: types into the currently focused element.
With two arguments: types into the first element matching the selector.

Flags:
  --clear         Clear existing content before typing
  --key <key>     Send a named key after typing, e.g. Enter or Tab

Examples:
  type "#username" "john_doe"
  type "#email" "new@email.com" --clear
  type "#search" "query" --key Enter`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runType,
}

func init() {
	typeCmd.Flags().Bool("clear", false, "Clear existing content before typing")
	typeCmd.Flags().String("key", "", "Named key to send after typing (Enter, Tab, Escape, ...)")
	addLocatorFlags(typeCmd)
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	clearFirst, _ := cmd.Flags().GetBool("clear")
	key, _ := cmd.Flags().GetString("key")

	text := args[len(args)-1]
	if key != "" {
		code, ok := webdriver.Keys[key]
		if !ok {
			return outputError("unknown key: " + key + " (see wdctl key --help)")
		}
		text += code
	}

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	var el *webdriver.Element
	if len(args) == 2 {
		el, err = s.FindElement(ctx, locator(cmd, args[0]))
	} else {
		el, err = s.ActiveElement(ctx)
	}
	if err != nil {
		return outputErr(err)
	}

	if clearFirst {
		if err := el.Clear(ctx); err != nil {
			return outputErr(err)
		}
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}
