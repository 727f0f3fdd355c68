package tasks

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/arthur-debert/zapp/pkg/paths"
)

// Print writes the tree rooted at task without running anything. Each node
// is indented like its report line would be.
func Print(w io.Writer, task *Task) {
	printTask(w, task, 0)
}

func printTask(w io.Writer, task *Task, depth int) {
	var line strings.Builder
	line.WriteString(strings.Repeat(Indent, depth))
	line.WriteString(task.Name)
	fmt.Fprintf(&line, " (%s)", task.Kind())
	if detail := describe(task.Action); detail != "" {
		line.WriteString(" ")
		line.WriteString(detail)
	}
	if task.Privileged {
		line.WriteString(" [su]")
	}
	fmt.Fprintln(w, line.String())

	if g, ok := task.Action.(*Group); ok {
		for _, child := range g.Tasks {
			printTask(w, child, depth+1)
		}
	}
}

func describe(action Action) string {
	switch a := action.(type) {
	case *Copy:
		return a.Source + " -> " + a.Destination + modeSuffix(a.Mode)
	case *Symlink:
		return a.Source + " -> " + a.Destination
	case *Template:
		return a.Source + " -> " + a.Destination + modeSuffix(a.Mode)
	case *Shell:
		return fmt.Sprintf("%q", a.Command)
	default:
		return ""
	}
}

func modeSuffix(mode *fs.FileMode) string {
	if mode == nil {
		return ""
	}
	return fmt.Sprintf(" mode=%04o", paths.ModeBits(*mode))
}
