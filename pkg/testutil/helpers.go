package testutil

import "strings"

// Lines splits report output into lines, dropping the trailing newline
func Lines(output string) []string {
	output = strings.TrimSuffix(output, "\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}
