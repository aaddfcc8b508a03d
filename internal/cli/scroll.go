package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll <selector> | --to x,y | --by x,y",
	Short: "Scroll to element or position",
	Long: `Scrolls to an element, absolute position, or by an offset.

With a selector: scrolls the element into the center of the viewport.
With --to x,y: scrolls to an absolute position.
With --by x,y: scrolls by the given offset.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScroll,
}

var (
	scrollTo string
	scrollBy string
)

func init() {
	scrollCmd.Flags().StringVar(&scrollTo, "to", "", "Scroll to absolute position (x,y)")
	scrollCmd.Flags().StringVar(&scrollBy, "by", "", "Scroll by offset (x,y)")
	scrollCmd.MarkFlagsMutuallyExclusive("to", "by")
	rootCmd.AddCommand(scrollCmd)
}

func runScroll(cmd *cobra.Command, args []string) error {
	modes := 0
	for _, set := range []bool{len(args) == 1, scrollTo != "", scrollBy != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return outputError("give exactly one of: selector, --to x,y, --by x,y")
	}

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	switch {
	case len(args) == 1:
		el, ferr := s.FindElement(ctx, webdriver.CSS(args[0]))
		if ferr != nil {
			return outputErr(ferr)
		}
		_, err = s.ExecuteSync(ctx, `arguments[0].scrollIntoView({block: "center", inline: "center"});`, el)
	case scrollTo != "":
		x, y, perr := parseCoords(scrollTo)
		if perr != nil {
			return outputErr(perr)
		}
		_, err = s.ExecuteSync(ctx, "window.scrollTo(arguments[0], arguments[1]);", x, y)
	default:
		x, y, perr := parseCoords(scrollBy)
		if perr != nil {
			return outputErr(perr)
		}
		_, err = s.ExecuteSync(ctx, "window.scrollBy(arguments[0], arguments[1]);", x, y)
	}
	if err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}

// parseCoords parses a "x,y" string into integers.
func parseCoords(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinates %q: expected x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate: %v", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate: %v", err)
	}
	return x, y, nil
}
