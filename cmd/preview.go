package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/log"
	"github.com/zjrosen/rtkit/internal/markdown"
)

var (
	previewWidth int
	previewRaw   bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <markdown-file>",
	Short: "Show the title, card count and text that would be submitted",
	Long: `Runs title extraction and content preparation without calling Gamma, then
renders the result in the terminal.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "word wrap width")
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "print the prepared markdown without rendering")
	gammaCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return reportFailure(cmd, "Usage: rt gamma preview <markdown-file>")
	}
	path := args[0]

	content, err := markdown.ReadFile(path)
	if err != nil {
		return err
	}

	title, found := markdown.ExtractTitle(content)
	source := "document"
	if !found {
		title = markdown.FallbackTitle(path)
		source = "file name"
	}
	prepared := markdown.PrepareContent(content, title)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s %s %s\n", headingStyle.Render("Title:"), title, dimStyle.Render("(from "+source+")"))
	_, _ = fmt.Fprintf(out, "%s %d\n\n", headingStyle.Render("Cards:"), markdown.CountCards(prepared))

	if previewRaw {
		_, _ = fmt.Fprint(out, prepared)
		return nil
	}
	_, _ = fmt.Fprintln(out, renderMarkdown(prepared, previewWidth))
	return nil
}

// renderMarkdown converts markdown to terminal output. Falls back to the
// plain text if the renderer is unavailable.
func renderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug(log.CatCLI, "Markdown renderer unavailable", "error", err)
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}
