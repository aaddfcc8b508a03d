package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/cli/format"
	"github.com/grantcarthew/wdctl/internal/pagesource"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the current page URL",
	Args:  cobra.NoArgs,
	RunE:  runURL,
}

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Print the current page title",
	Args:  cobra.NoArgs,
	RunE:  runTitle,
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Print the page source",
	Long: `Prints the serialized DOM of the current page.

Flags:
  --output, -o    Write to a file instead of stdout
  --pretty, -p    Re-indent the markup, one tag per line

Response (with -o):
  {"ok": true, "data": {"path": "./page.html"}}`,
	Args: cobra.NoArgs,
	RunE: runSource,
}

func init() {
	sourceCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	sourceCmd.Flags().BoolP("pretty", "p", false, "Re-indent the markup")
	rootCmd.AddCommand(urlCmd, titleCmd, sourceCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	url, err := s.CurrentURL(commandContext(cmd))
	if err != nil {
		return outputErr(err)
	}
	if JSONOutput {
		return outputSuccess(map[string]any{"url": url})
	}
	_, err = fmt.Fprintln(os.Stdout, url)
	return err
}

func runTitle(cmd *cobra.Command, args []string) error {
	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	title, err := s.Title(commandContext(cmd))
	if err != nil {
		return outputErr(err)
	}
	if JSONOutput {
		return outputSuccess(map[string]any{"title": title})
	}
	_, err = fmt.Fprintln(os.Stdout, title)
	return err
}

func runSource(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	pretty, _ := cmd.Flags().GetBool("pretty")

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	src, err := s.Source(commandContext(cmd))
	if err != nil {
		return outputErr(err)
	}
	if pretty {
		if src, err = pagesource.Indent(src); err != nil {
			return outputErr(err)
		}
		src = strings.TrimSuffix(src, "\n")
	}

	if output == "" {
		if JSONOutput {
			return outputSuccess(map[string]any{"source": src})
		}
		_, err = fmt.Fprintln(os.Stdout, src)
		return err
	}

	if err := writeFile(output, []byte(src)); err != nil {
		return outputErr(err)
	}
	if JSONOutput {
		return outputSuccess(map[string]any{"path": output})
	}
	return format.FilePath(os.Stdout, output)
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", filepath.Base(path), err)
	}
	return nil
}
