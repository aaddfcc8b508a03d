package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/cli/format"
	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var navigateCmd = &cobra.Command{
	Use:   "navigate <url>",
	Short: "Navigate to URL",
	Long: `Navigates the session's current window to the URL and prints where it
landed. The server returns once the page load strategy is satisfied.

A URL without a scheme gets http:// for localhost addresses and https://
otherwise.

Response:
  {"ok": true, "data": {"url": "https://example.com/", "title": "Example Domain"}}`,
	Args: cobra.ExactArgs(1),
	RunE: runNavigate,
}

func init() {
	rootCmd.AddCommand(navigateCmd)
}

// normalizeURL adds protocol to URL if missing.
// Uses http:// for localhost/127.0.0.1/0.0.0.0, https:// otherwise.
func normalizeURL(url string) string {
	if strings.Contains(url, "://") || strings.HasPrefix(url, "about:") || strings.HasPrefix(url, "data:") {
		return url
	}

	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "localhost") ||
		strings.HasPrefix(lower, "127.0.0.1") ||
		strings.HasPrefix(lower, "0.0.0.0") {
		return "http://" + url
	}

	return "https://" + url
}

func runNavigate(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	url := normalizeURL(args[0])
	debugf("navigate %s", url)
	if err := s.Navigate(ctx, url); err != nil {
		return outputErr(err)
	}
	return outputPage(ctx, s)
}

// outputPage prints the URL and title the session is on after a navigation.
func outputPage(ctx context.Context, s *webdriver.Session) error {
	url, err := s.CurrentURL(ctx)
	if err != nil {
		return outputErr(err)
	}
	title, err := s.Title(ctx)
	if err != nil {
		return outputErr(err)
	}

	if JSONOutput {
		return outputSuccess(map[string]any{"url": url, "title": title})
	}
	return format.Page(os.Stdout, url, title, format.NewOutputOptions(JSONOutput, NoColor))
}
