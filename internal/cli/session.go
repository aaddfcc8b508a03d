package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/cli/format"
	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Create or end browser sessions",
	Long: `Manages WebDriver sessions.

A session is one browser instance. Commands that drive the browser need a
session ID, given with --session or the WDCTL_SESSION environment variable.

  export WDCTL_SESSION=$(wdctl session new --headless)
  wdctl navigate example.com
  wdctl session delete`,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a browser session",
	Long: `Starts a new browser session and prints its ID.

Flags:
  --browser     chrome, firefox or safari (default chrome)
  --headless    Run without a visible window (chrome and firefox)
  --arg         Extra browser argument, repeatable
  --platform    Required platform name, e.g. linux
  --proxy       host:port for HTTP and TLS traffic, or direct, system or
                autodetect
  --no-proxy    Host the proxy is bypassed for, repeatable

Response:
  {"ok": true, "data": {"session": "<id>", "capabilities": {...}}}`,
	Args: cobra.NoArgs,
	RunE: runSessionNew,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "End a browser session",
	Long:  "Ends the given session, or the current one, and closes its windows.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionDelete,
}

func init() {
	sessionNewCmd.Flags().String("browser", webdriver.Chrome, "Browser name: chrome, firefox or safari")
	sessionNewCmd.Flags().Bool("headless", false, "Run without a visible window")
	sessionNewCmd.Flags().StringArray("arg", nil, "Extra browser argument (repeatable)")
	sessionNewCmd.Flags().String("platform", "", "Required platform name")
	sessionNewCmd.Flags().String("proxy", "", "Proxy host:port, or direct, system or autodetect")
	sessionNewCmd.Flags().StringArray("no-proxy", nil, "Host to bypass the proxy for (repeatable)")

	sessionCmd.AddCommand(sessionNewCmd, sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, args []string) error {
	browser, _ := cmd.Flags().GetString("browser")
	headless, _ := cmd.Flags().GetBool("headless")
	extra, _ := cmd.Flags().GetStringArray("arg")
	platform, _ := cmd.Flags().GetString("platform")
	proxy, _ := cmd.Flags().GetString("proxy")
	bypass, _ := cmd.Flags().GetStringArray("no-proxy")

	switch browser {
	case webdriver.Chrome, webdriver.Firefox, webdriver.Safari:
	default:
		return outputError("unknown browser: " + browser + " (use chrome, firefox or safari)")
	}

	caps := webdriver.Capabilities{
		BrowserName:  browser,
		PlatformName: platform,
		Args:         extra,
		Proxy:        proxyCapability(proxy, bypass),
	}
	if headless {
		caps.Args = append([]string{"-headless"}, caps.Args...)
		if browser == webdriver.Chrome {
			caps.Args[0] = "--headless=new"
		}
	}

	c, err := newClient()
	if err != nil {
		return outputErr(err)
	}
	s, err := c.NewSession(commandContext(cmd), caps)
	if err != nil {
		return outputErr(err)
	}
	debugf("session %s capabilities %s", s.ID, s.Capabilities)

	if JSONOutput {
		data := map[string]any{"session": s.ID}
		if len(s.Capabilities) > 0 {
			data["capabilities"] = json.RawMessage(s.Capabilities)
		}
		return outputSuccess(data)
	}
	return format.Session(os.Stdout, s.ID, sessionBrowser(s.Capabilities), format.NewOutputOptions(JSONOutput, NoColor))
}

// proxyCapability maps the --proxy flag to a proxy capability, or nil when
// the flag is unset.
func proxyCapability(spec string, bypass []string) *webdriver.Proxy {
	switch t := webdriver.ProxyType(spec); t {
	case "":
		return nil
	case webdriver.ProxyDirect, webdriver.ProxySystem, webdriver.ProxyAutodetect:
		return &webdriver.Proxy{Type: t}
	default:
		return webdriver.ManualProxy(spec, bypass...)
	}
}

// sessionBrowser pulls "browserName browserVersion" out of granted
// capabilities, or returns "" when they are absent.
func sessionBrowser(caps json.RawMessage) string {
	var v struct {
		Name    string `json:"browserName"`
		Version string `json:"browserVersion"`
	}
	if len(caps) == 0 || json.Unmarshal(caps, &v) != nil {
		return ""
	}
	if v.Version == "" {
		return v.Name
	}
	return v.Name + " " + v.Version
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	var s *webdriver.Session
	if len(args) == 1 {
		c, err := newClient()
		if err != nil {
			return outputErr(err)
		}
		s = c.Session(args[0])
	} else {
		var err error
		if s, err = currentSession(); err != nil {
			return outputErr(err)
		}
	}

	if err := s.Delete(commandContext(cmd)); err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}
