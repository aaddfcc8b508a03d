package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var timeoutsCmd = &cobra.Command{
	Use:   "timeouts",
	Short: "Show or set session timeouts",
	Long: `Prints the session's implicit wait, page load and script timeouts, or
changes the ones given as flags.

  timeouts
  timeouts --implicit 2s --page-load 60s`,
	Args: cobra.NoArgs,
	RunE: runTimeouts,
}

func init() {
	timeoutsCmd.Flags().Duration("implicit", 0, "Element lookup wait")
	timeoutsCmd.Flags().Duration("page-load", 0, "Navigation limit")
	timeoutsCmd.Flags().Duration("script", 0, "Script execution limit")
	rootCmd.AddCommand(timeoutsCmd)
}

func runTimeouts(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	t, err := s.Timeouts(ctx)
	if err != nil {
		return outputErr(err)
	}

	flags := cmd.Flags()
	if flags.Changed("implicit") || flags.Changed("page-load") || flags.Changed("script") {
		if flags.Changed("implicit") {
			d, _ := flags.GetDuration("implicit")
			t.Implicit = int(d.Milliseconds())
		}
		if flags.Changed("page-load") {
			d, _ := flags.GetDuration("page-load")
			t.PageLoad = int(d.Milliseconds())
		}
		if flags.Changed("script") {
			d, _ := flags.GetDuration("script")
			t.Script = int(d.Milliseconds())
		}
		if err := s.SetTimeouts(ctx, t); err != nil {
			return outputErr(err)
		}
	}

	if JSONOutput {
		return outputSuccess(t)
	}
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	_, err = fmt.Fprintf(os.Stdout, "implicit: %s\npage-load: %s\nscript: %s\n", ms(t.Implicit), ms(t.PageLoad), ms(t.Script))
	return err
}
