package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
	"github.com/grantcarthew/wdctl/internal/wire"
)

var rawCmd = &cobra.Command{
	Use:   "raw <method> <path> [body]",
	Short: "Send a raw WebDriver command",
	Long: `Sends one command and prints the JSON body of the response.

Paths are relative to /wd/hub unless they start with /. The placeholder
{session} is replaced with the current session ID. POST bodies default to {}.

With --binary the response value is decoded from base64 and written to the
--output file.

Examples:
  raw GET status
  raw GET session/{session}/window/handles
  raw POST session/{session}/url '{"url":"https://example.com"}'
  raw GET session/{session}/screenshot --binary -o shot.png`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRaw,
}

func init() {
	rawCmd.Flags().Bool("binary", false, "Decode a base64 value and write it to --output")
	rawCmd.Flags().StringP("output", "o", "", "Output file for --binary")
	rootCmd.AddCommand(rawCmd)
}

// rawRequest builds the request for the raw command's arguments.
func rawRequest(method, path, body, session string) (wire.Request, error) {
	m := wire.Method(strings.ToUpper(method))
	switch m {
	case wire.GET, wire.DELETE:
		if body != "" {
			return wire.Request{}, fmt.Errorf("%s takes no body", m)
		}
	case wire.POST:
		if body == "" {
			body = "{}"
		}
		if !json.Valid([]byte(body)) {
			return wire.Request{}, fmt.Errorf("body is not valid JSON")
		}
	default:
		return wire.Request{}, fmt.Errorf("unsupported method %q (use GET, POST or DELETE)", method)
	}

	if strings.Contains(path, "{session}") {
		if session == "" {
			return wire.Request{}, errNoSession
		}
		path = strings.ReplaceAll(path, "{session}", session)
	}
	if strings.HasPrefix(path, "/") {
		path = strings.TrimPrefix(path, "/")
	} else {
		path = webdriver.Root + "/" + path
	}

	if m == wire.POST {
		return wire.JSONRequest(m, path, []byte(body)), nil
	}
	return wire.NewRequest(m, path), nil
}

func runRaw(cmd *cobra.Command, args []string) error {
	binary, _ := cmd.Flags().GetBool("binary")
	output, _ := cmd.Flags().GetString("output")
	if binary && output == "" {
		return outputError("--binary requires --output")
	}

	cfg, err := execFactory.Config()
	if err != nil {
		return outputErr(err)
	}
	var body string
	if len(args) == 3 {
		body = args[2]
	}
	req, err := rawRequest(args[0], args[1], body, cfg.Session)
	if err != nil {
		return outputErr(err)
	}

	exec, err := execFactory.NewExecutor()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)
	debugf("raw %s", req)

	if binary {
		blob, err := exec.Binary(ctx, req)
		if err != nil {
			return outputErr(err)
		}
		return outputArtifact(output, blob)
	}

	resp, err := exec.Body(ctx, req)
	if err != nil {
		return outputErr(err)
	}
	if JSONOutput {
		if json.Valid(resp) {
			return outputSuccess(json.RawMessage(resp))
		}
		return outputSuccess(string(resp))
	}
	_, err = fmt.Fprintln(os.Stdout, string(resp))
	return err
}
