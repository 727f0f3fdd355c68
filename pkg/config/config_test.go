package config_test

import (
	"testing"

	"github.com/arthur-debert/zapp/pkg/config"
	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	t.Setenv("ZAPP_SHELL", "")
	env.WriteConfig(`
params:
  - base.yaml
  - host.toml
tasks:
  - dev
  - setup:
      - copy: {src: a.txt, dst: ~/a.txt}
      - shell: exit 1
`)

	cfg, err := config.Load(env.Paths)
	require.NoError(t, err)

	assert.Equal(t, []string{"base.yaml", "host.toml"}, cfg.Params)
	assert.Equal(t, "/bin/sh", cfg.Shell, "default shell")
	require.Len(t, cfg.Tasks, 2)
	assert.Equal(t, "dev", cfg.Tasks[0])

	setup, ok := cfg.Tasks[1].(map[string]interface{})
	require.True(t, ok, "mapping entries stay raw, got %T", cfg.Tasks[1])
	assert.Len(t, setup["setup"], 2)
}

func TestLoadShell(t *testing.T) {
	t.Run("from config file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		t.Setenv("ZAPP_SHELL", "")
		env.WriteConfig("shell: /bin/bash\ntasks: []\n")

		cfg, err := config.Load(env.Paths)
		require.NoError(t, err)
		assert.Equal(t, "/bin/bash", cfg.Shell)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		t.Setenv("ZAPP_SHELL", "/usr/bin/zsh")
		env.WriteConfig("shell: /bin/bash\n")

		cfg, err := config.Load(env.Paths)
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/zsh", cfg.Shell)
	})

	t.Run("unrelated ZAPP_ variables are ignored", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		t.Setenv("ZAPP_SHELL", "")
		t.Setenv("ZAPP_TASKS", "not-a-list")
		env.WriteConfig("tasks: [dev]\n")

		cfg, err := config.Load(env.Paths)
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"dev"}, cfg.Tasks)
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		config   *string
		wantCode errors.ErrorCode
	}{
		{name: "missing config.yaml", config: nil, wantCode: errors.ErrConfigLoad},
		{name: "invalid yaml", config: strPtr("tasks: [unclosed\n"), wantCode: errors.ErrConfigParse},
		{name: "tasks is a mapping", config: strPtr("tasks:\n  a: b\n"), wantCode: errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
			t.Setenv("ZAPP_SHELL", "")
			if tt.config != nil {
				env.WriteConfig(*tt.config)
			}

			_, err := config.Load(env.Paths)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err), "got %v", err)
		})
	}
}

func strPtr(s string) *string { return &s }
