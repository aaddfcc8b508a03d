package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/cli/format"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show WebDriver server readiness",
	Long: `Asks the WebDriver server whether it can create new sessions.

Response:
  {"ok": true, "data": {"server": "127.0.0.1:4444", "ready": true, "message": "..."}}`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := execFactory.Config()
	if err != nil {
		return outputErr(err)
	}
	c, err := newClient()
	if err != nil {
		return outputErr(err)
	}

	st, err := c.Status(commandContext(cmd))
	if err != nil {
		return outputErr(err)
	}

	if JSONOutput {
		return outputSuccess(map[string]any{
			"server":  cfg.Addr(),
			"ready":   st.Ready,
			"message": st.Message,
		})
	}
	return format.Status(os.Stdout, cfg.Addr(), st, format.NewOutputOptions(JSONOutput, NoColor))
}
