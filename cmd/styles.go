package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// listRow is one line of an aligned two-column listing.
type listRow struct {
	name   string
	detail string
}

// printList writes rows under heading with the name column aligned.
func printList(w io.Writer, heading string, rows []listRow, empty string) {
	_, _ = fmt.Fprintln(w, headingStyle.Render(heading))
	_, _ = fmt.Fprintln(w)

	if len(rows) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", dimStyle.Render(empty))
		return
	}

	width := lo.Max(lo.Map(rows, func(r listRow, _ int) int { return lipgloss.Width(r.name) }))
	for _, r := range rows {
		name := nameStyle.Render(r.name) + strings.Repeat(" ", width-lipgloss.Width(r.name))
		_, _ = fmt.Fprintf(w, "  %s  %s\n", name, r.detail)
	}
}
