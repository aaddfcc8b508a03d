package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/cli/format"
	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var cookiesCmd = &cobra.Command{
	Use:   "cookies",
	Short: "Show, save, set and delete cookies",
	Long: `Reads and changes the cookies visible to the current page.

Default behavior (no subcommand) is the same as "cookies show".

Subcommands:
  show                Output cookies to stdout
  save <path>         Save cookies as JSON to a file or directory
  set <name> <value>  Set a cookie
  delete [name]       Delete a cookie, or all with --all

Filter flags (show and save):
  --find, -f        Search for text within cookie names and values
  --domain DOMAIN   Filter by cookie domain (suffix match)
  --name NAME       Filter by exact cookie name

Examples:
  cookies show --domain example.com
  cookies save ./auth.json --find auth
  cookies set theme dark --path / --samesite Lax
  cookies delete --all`,
	Args: cobra.NoArgs,
	RunE: runCookiesShow,
}

var cookiesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Output cookies to stdout",
	Args:  cobra.NoArgs,
	RunE:  runCookiesShow,
}

var cookiesSaveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Save cookies to a file",
	Long: `Saves cookies as JSON. A path ending in / is treated as a directory
and gets an auto-generated YY-MM-DD-HHMMSS-cookies.json filename.`,
	Args: cobra.ExactArgs(1),
	RunE: runCookiesSave,
}

var cookiesSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Set a cookie",
	Long: `Adds a cookie to the current page's cookie store.

SameSite values:
  Strict  Cookie sent only for same-site requests
  Lax     Cookie sent with top-level navigations (default in browsers)
  None    Cookie sent in all contexts (requires --secure)`,
	Args: cobra.ExactArgs(2),
	RunE: runCookiesSet,
}

var cookiesDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a cookie",
	Long: `Deletes a cookie by name, or every cookie with --all.

Deleting a non-existent cookie returns success.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCookiesDelete,
}

func init() {
	cookiesCmd.PersistentFlags().StringP("find", "f", "", "Search for text within cookie names and values")
	cookiesCmd.PersistentFlags().String("domain", "", "Filter by cookie domain")
	cookiesCmd.PersistentFlags().String("name", "", "Filter by exact cookie name")

	cookiesSetCmd.Flags().String("domain", "", "Cookie domain (defaults to current page domain)")
	cookiesSetCmd.Flags().String("path", "/", "Cookie path")
	cookiesSetCmd.Flags().Bool("secure", false, "Require HTTPS")
	cookiesSetCmd.Flags().Bool("httponly", false, "HTTP-only (no JavaScript access)")
	cookiesSetCmd.Flags().Int("max-age", 0, "Expiry in seconds from now (0 = session cookie)")
	cookiesSetCmd.Flags().String("samesite", "", "SameSite policy: Strict, Lax, or None")

	cookiesDeleteCmd.Flags().Bool("all", false, "Delete every cookie")

	cookiesCmd.AddCommand(cookiesShowCmd, cookiesSaveCmd, cookiesSetCmd, cookiesDeleteCmd)
	rootCmd.AddCommand(cookiesCmd)
}

func runCookiesShow(cmd *cobra.Command, args []string) error {
	cookies, err := getFilteredCookies(cmd)
	if err != nil {
		return outputErr(err)
	}

	if JSONOutput {
		return outputSuccess(map[string]any{"cookies": cookies, "count": len(cookies)})
	}
	return format.Cookies(os.Stdout, cookies, format.NewOutputOptions(JSONOutput, NoColor))
}

func runCookiesSave(cmd *cobra.Command, args []string) error {
	cookies, err := getFilteredCookies(cmd)
	if err != nil {
		return outputErr(err)
	}

	path := args[0]
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		path = filepath.Join(path, generateCookiesFilename())
	}
	if err := writeCookiesToFile(path, cookies); err != nil {
		return outputErr(err)
	}

	if JSONOutput {
		return outputSuccess(map[string]any{"path": path, "count": len(cookies)})
	}
	return format.FilePath(os.Stdout, path)
}

// getFilteredCookies fetches the session's cookies and applies the
// --domain, --name and --find filters in that order.
func getFilteredCookies(cmd *cobra.Command) ([]webdriver.Cookie, error) {
	find, _ := cmd.Flags().GetString("find")
	domain, _ := cmd.Flags().GetString("domain")
	name, _ := cmd.Flags().GetString("name")

	s, err := currentSession()
	if err != nil {
		return nil, err
	}
	cookies, err := s.Cookies(commandContext(cmd))
	if err != nil {
		return nil, err
	}

	if domain != "" {
		cookies = filterCookiesByDomain(cookies, domain)
	}
	if name != "" {
		cookies = filterCookiesByName(cookies, name)
	}
	if find != "" {
		cookies = filterCookiesByText(cookies, find)
		if len(cookies) == 0 {
			return nil, fmt.Errorf("no matches found for '%s'", find)
		}
	}
	return cookies, nil
}

// filterCookiesByDomain keeps cookies whose domain equals domain or, when
// domain has no leading dot, is a subdomain of it.
func filterCookiesByDomain(cookies []webdriver.Cookie, domain string) []webdriver.Cookie {
	var filtered []webdriver.Cookie
	domainLower := strings.ToLower(domain)

	for _, cookie := range cookies {
		cookieDomain := strings.ToLower(cookie.Domain)
		if cookieDomain == domainLower {
			filtered = append(filtered, cookie)
			continue
		}
		// "example.com" matches ".example.com" and "www.example.com"
		if !strings.HasPrefix(domainLower, ".") && strings.HasSuffix(cookieDomain, "."+domainLower) {
			filtered = append(filtered, cookie)
		}
	}
	return filtered
}

func filterCookiesByName(cookies []webdriver.Cookie, name string) []webdriver.Cookie {
	var filtered []webdriver.Cookie
	for _, cookie := range cookies {
		if cookie.Name == name {
			filtered = append(filtered, cookie)
		}
	}
	return filtered
}

// filterCookiesByText keeps cookies containing searchText in name or value,
// case-insensitively.
func filterCookiesByText(cookies []webdriver.Cookie, searchText string) []webdriver.Cookie {
	var matched []webdriver.Cookie
	searchLower := strings.ToLower(searchText)

	for _, cookie := range cookies {
		if strings.Contains(strings.ToLower(cookie.Name), searchLower) ||
			strings.Contains(strings.ToLower(cookie.Value), searchLower) {
			matched = append(matched, cookie)
		}
	}
	return matched
}

// writeCookiesToFile writes cookies to a file in JSON format, creating directories if needed
func writeCookiesToFile(path string, cookies []webdriver.Cookie) error {
	data := map[string]any{
		"ok":      true,
		"cookies": cookies,
		"count":   len(cookies),
	}
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cookies: %v", err)
	}
	return writeFile(path, jsonBytes)
}

// generateCookiesFilename generates a filename using the pattern:
// YY-MM-DD-HHMMSS-cookies.json
func generateCookiesFilename() string {
	return fmt.Sprintf("%s-cookies.json", time.Now().Format("06-01-02-150405"))
}

func runCookiesSet(cmd *cobra.Command, args []string) error {
	domain, _ := cmd.Flags().GetString("domain")
	path, _ := cmd.Flags().GetString("path")
	secure, _ := cmd.Flags().GetBool("secure")
	httponly, _ := cmd.Flags().GetBool("httponly")
	maxAge, _ := cmd.Flags().GetInt("max-age")
	sameSite, _ := cmd.Flags().GetString("samesite")

	switch sameSite {
	case "", "Strict", "Lax", "None":
	default:
		return outputError(fmt.Sprintf("invalid samesite %q (use Strict, Lax or None)", sameSite))
	}
	if sameSite == "None" && !secure {
		return outputError("samesite None requires --secure")
	}

	cookie := webdriver.Cookie{
		Name:     args[0],
		Value:    args[1],
		Path:     path,
		Domain:   domain,
		Secure:   secure,
		HTTPOnly: httponly,
		SameSite: sameSite,
	}
	if maxAge > 0 {
		cookie.Expiry = time.Now().Add(time.Duration(maxAge) * time.Second).Unix()
	}

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	if err := s.AddCookie(commandContext(cmd), cookie); err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}

func runCookiesDelete(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if all == (len(args) == 1) {
		return outputError("give a cookie name or --all")
	}

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	if all {
		err = s.DeleteAllCookies(ctx)
	} else {
		err = s.DeleteCookie(ctx, args[0])
	}
	if err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}
