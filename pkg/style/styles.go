// Package style holds the terminal styles used for zapp's report and errors.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles is a set of styles bound to one output writer. Colour is only
// emitted when the writer is a terminal that supports it.
type Styles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Skipped lipgloss.Style
	Error   lipgloss.Style
}

// New returns styles for w; noColor forces plain text
func New(w io.Writer, noColor bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		Failure: r.NewStyle().Foreground(ErrorColor).Bold(true),
		Skipped: r.NewStyle().Foreground(WarningColor),
		Error:   r.NewStyle().Foreground(ErrorColor),
	}
}
