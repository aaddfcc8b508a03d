package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/cli/format"
	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture screenshot of current page",
	Long: `Captures a PNG screenshot of the current viewport, or of one element,
and saves it to a file.

Flags:
  --element, -e     CSS selector of the element to capture
  --output, -o      Save to specified path instead of temp directory

File location:
  Default: /tmp/wdctl-screenshots/YY-MM-DD-HHMMSS-{title}.png
  Custom:  Specified path with --output flag

Examples:
  screenshot                            # Current visible area
  screenshot -o ./debug/page.png        # Save to specific location
  screenshot -e "#login-form"           # Just the login form

Response:
  {"ok": true, "data": {"path": "/tmp/wdctl-screenshots/24-12-24-143052-example-domain.png", "bytes": 48213}}`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	screenshotCmd.Flags().StringP("element", "e", "", "CSS selector of the element to capture")
	screenshotCmd.Flags().StringP("output", "o", "", "Save to specified path instead of temp directory")
	rootCmd.AddCommand(screenshotCmd)
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	selector, _ := cmd.Flags().GetString("element")
	output, _ := cmd.Flags().GetString("output")

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	var png []byte
	if selector != "" {
		el, ferr := s.FindElement(ctx, webdriver.CSS(selector))
		if ferr != nil {
			return outputErr(ferr)
		}
		png, err = el.Screenshot(ctx)
	} else {
		png, err = s.Screenshot(ctx)
	}
	if err != nil {
		return outputErr(err)
	}

	if output == "" {
		output = generateArtifactPath(ctx, s, "/tmp/wdctl-screenshots", ".png")
	}
	return outputArtifact(output, png)
}

// outputArtifact saves a binary command result and reports where it went.
func outputArtifact(path string, data []byte) error {
	if err := writeFile(path, data); err != nil {
		return outputErr(err)
	}
	if JSONOutput {
		return outputSuccess(map[string]any{"path": path, "bytes": len(data)})
	}
	if Debug {
		return format.Size(os.Stdout, path, len(data), format.NewOutputOptions(JSONOutput, NoColor))
	}
	return format.FilePath(os.Stdout, path)
}

// generateArtifactPath generates a filename in dir using the pattern
// YY-MM-DD-HHMMSS-{normalized-title}{ext}.
func generateArtifactPath(ctx context.Context, s *webdriver.Session, dir, ext string) string {
	title, err := s.Title(ctx)
	if err != nil {
		debugf("title for filename: %v", err)
	}
	timestamp := time.Now().Format("06-01-02-150405")
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", timestamp, normalizeTitle(title), ext))
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// normalizeTitle normalizes a page title for use in filenames.
// Algorithm:
// 1. Trim whitespace
// 2. Limit to 30 characters
// 3. Convert non-alphanumeric runs to a hyphen
// 4. Remove leading/trailing hyphens and lowercase
func normalizeTitle(title string) string {
	title = strings.TrimSpace(title)

	if len(title) > 30 {
		title = title[:30]
	}

	title = nonAlnum.ReplaceAllString(title, "-")
	title = strings.ToLower(strings.Trim(title, "-"))

	if title == "" {
		title = "untitled"
	}
	return title
}
