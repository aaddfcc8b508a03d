package cli

import (
	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render the current page to PDF",
	Long: `Renders the current page to a PDF on US Letter paper with 1cm margins
and saves it to a file.

Flags:
  --output, -o      Save to specified path instead of temp directory
  --landscape       Landscape orientation
  --scale           Scale factor, 0.1 to 2.0 (default 1.0)
  --background      Include background graphics
  --pages           Page range, repeatable (e.g. --pages 1-3 --pages 5)

File location:
  Default: /tmp/wdctl-prints/YY-MM-DD-HHMMSS-{title}.pdf

Response:
  {"ok": true, "data": {"path": "/tmp/wdctl-prints/24-12-24-143052-example-domain.pdf", "bytes": 31877}}`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringP("output", "o", "", "Save to specified path instead of temp directory")
	printCmd.Flags().Bool("landscape", false, "Landscape orientation")
	printCmd.Flags().Float64("scale", 1.0, "Scale factor (0.1 to 2.0)")
	printCmd.Flags().Bool("background", false, "Include background graphics")
	printCmd.Flags().StringArray("pages", nil, "Page range to print (repeatable)")
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	landscape, _ := cmd.Flags().GetBool("landscape")
	scale, _ := cmd.Flags().GetFloat64("scale")
	background, _ := cmd.Flags().GetBool("background")
	pages, _ := cmd.Flags().GetStringArray("pages")

	settings := webdriver.DefaultPrintSettings()
	if landscape {
		settings.Orientation = webdriver.Landscape
	}
	settings.Scale = scale
	settings.Background = background
	settings.PageRanges = pages
	if err := settings.Validate(); err != nil {
		return outputErr(err)
	}

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	pdf, err := s.Print(ctx, settings)
	if err != nil {
		return outputErr(err)
	}

	if output == "" {
		output = generateArtifactPath(ctx, s, "/tmp/wdctl-prints", ".pdf")
	}
	return outputArtifact(output, pdf)
}
