package tasks

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/zapp/pkg/style"
)

// Indent is the report indentation per nesting level
const Indent = "  "

// Reporter writes one "<indent><name>: <STATUS>" line per finished task
type Reporter struct {
	out    io.Writer
	styles *style.Styles
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer, noColor bool) *Reporter {
	return &Reporter{out: out, styles: style.New(out, noColor)}
}

// Report writes the status line for a task at depth
func (r *Reporter) Report(depth int, name string, status Status) {
	fmt.Fprintf(r.out, "%s%s: %s\n", strings.Repeat(Indent, depth), name, r.render(status))
}

func (r *Reporter) render(status Status) string {
	switch status {
	case StatusSuccess:
		return r.styles.Success.Render(status.String())
	case StatusFailure:
		return r.styles.Failure.Render(status.String())
	case StatusSkipped:
		return r.styles.Skipped.Render(status.String())
	default:
		return status.String()
	}
}
