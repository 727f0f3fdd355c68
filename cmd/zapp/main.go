package main

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/zapp/internal/cli"
	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/style"
)

const (
	exitTasksFailed = 1
	exitFatal       = 2
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// The flag is unset when parsing itself failed
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		os.Exit(exitCode(os.Stderr, err, noColor || os.Getenv("NO_COLOR") != ""))
	}
}

// exitCode maps a command error to the process exit status. The report
// already shows which tasks failed, so only fatal errors are printed.
func exitCode(w io.Writer, err error, noColor bool) int {
	if errors.IsErrorCode(err, errors.ErrTasksFailed) {
		return exitTasksFailed
	}

	errorStyle := style.New(w, noColor).Error
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	return exitFatal
}
