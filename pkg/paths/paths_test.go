package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		configRoot string
		envSetup   map[string]string
		want       func(home string) string
	}{
		{
			name:       "explicit root",
			configRoot: "/etc/zapp",
			want:       func(string) string { return "/etc/zapp" },
		},
		{
			name:     "from ZAPP_CONFIG_DIR",
			envSetup: map[string]string{EnvConfigDir: "/env/zapp"},
			want:     func(string) string { return "/env/zapp" },
		},
		{
			name:       "explicit root wins over env",
			configRoot: "/flag/zapp",
			envSetup:   map[string]string{EnvConfigDir: "/env/zapp"},
			want:       func(string) string { return "/flag/zapp" },
		},
		{
			name:       "tilde in explicit root",
			configRoot: "~/dots",
			want:       func(home string) string { return filepath.Join(home, "dots") },
		},
		{
			name: "xdg fallback",
			want: func(string) string { return filepath.Join(xdg.ConfigHome, AppDirName) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv(EnvHome, home)
			t.Setenv(EnvConfigDir, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.configRoot)
			require.NoError(t, err)
			assert.Equal(t, tt.want(home), p.Root())
		})
	}
}

func TestAsset(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	p, err := New("/cfg")
	require.NoError(t, err)

	assert.Equal(t, "/cfg/files/a.txt", p.Asset(FilesDir, "a.txt"))
	assert.Equal(t, "/cfg/templates/git/config", p.Asset(TemplatesDir, "git/config"))
	assert.Equal(t, "/abs/b", p.Asset(FilesDir, "/abs/b"), "absolute paths are verbatim")
	assert.Equal(t, filepath.Join(home, "x"), p.Asset(FilesDir, "~/x"), "home shorthand is absolute")
	assert.Equal(t, "/cfg/tasks/dev.yaml", p.TaskFile("dev"))
	assert.Equal(t, "/cfg/config.yaml", p.ConfigFile())
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/a.txt", filepath.Join(home, "a.txt")},
		{"~/.config/x", filepath.Join(home, ".config", "x")},
		{"~other/a", "~other/a"},
		{"/etc/hosts", "/etc/hosts"},
		{"rel/path", "rel/path"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestNewRootIsAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	p, err := New("relative/cfg")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.Root()))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "relative", "cfg"), p.Root())
}
