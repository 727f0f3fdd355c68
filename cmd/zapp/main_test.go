package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/arthur-debert/zapp/internal/cli"
	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantOut string
	}{
		{name: "failed tasks", err: errors.New(errors.ErrTasksFailed, "one or more tasks failed"), want: 1},
		{name: "wrapped failed tasks", err: fmt.Errorf("run: %w", errors.New(errors.ErrTasksFailed, "failed")), want: 1},
		{name: "fatal config error", err: errors.New(errors.ErrConfigLoad, "unable to open config.yaml"), want: 2, wantOut: "Error: [CONFIG_LOAD] unable to open config.yaml\n"},
		{name: "plain error", err: fmt.Errorf("unknown flag: --nope"), want: 2, wantOut: "Error: unknown flag: --nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, exitCode(&out, tt.err, true))
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestNoColorFlagIsReadableAfterExecute(t *testing.T) {
	t.Setenv("ZAPP_SHELL", "")
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config-dir", t.TempDir(), "--no-color"})

	require.Error(t, rootCmd.Execute(), "missing config.yaml")

	noColor, err := rootCmd.PersistentFlags().GetBool("no-color")
	require.NoError(t, err)
	assert.True(t, noColor)
}
