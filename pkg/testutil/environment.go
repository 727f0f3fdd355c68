package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/zapp/pkg/filesystem"
	"github.com/arthur-debert/zapp/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a configuration root plus a home directory
type TestEnvironment struct {
	ConfigRoot string
	HomeDir    string

	FS    filesystem.FS
	Paths *paths.Paths

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. HOME and
// ZAPP_CONFIG_DIR point into it for the duration of the test.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.ConfigRoot = "/config/zapp"
		env.HomeDir = "/home/testuser"
		env.FS = filesystem.NewAferoFS(afero.NewMemMapFs())
	case EnvIsolated:
		base := t.TempDir()
		env.ConfigRoot = filepath.Join(base, "config", "zapp")
		env.HomeDir = filepath.Join(base, "home")
		env.FS = filesystem.NewOS()
	}

	t.Setenv(paths.EnvHome, env.HomeDir)
	t.Setenv(paths.EnvConfigDir, env.ConfigRoot)
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))

	if err := env.FS.MkdirAll(env.HomeDir, 0755); err != nil {
		t.Fatalf("Failed to create home dir: %v", err)
	}
	if err := env.FS.MkdirAll(env.ConfigRoot, 0755); err != nil {
		t.Fatalf("Failed to create config root: %v", err)
	}

	p, err := paths.New(env.ConfigRoot)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	return env
}

// WriteConfig writes config.yaml
func (e *TestEnvironment) WriteConfig(content string) string {
	return e.write(e.Paths.ConfigFile(), content)
}

// WriteTaskFile writes tasks/<name>.yaml
func (e *TestEnvironment) WriteTaskFile(name, content string) string {
	return e.write(e.Paths.TaskFile(name), content)
}

// WriteAsset writes a file under files/
func (e *TestEnvironment) WriteAsset(name, content string) string {
	return e.write(e.Paths.Asset(paths.FilesDir, name), content)
}

// WriteTemplate writes a file under templates/
func (e *TestEnvironment) WriteTemplate(name, content string) string {
	return e.write(e.Paths.Asset(paths.TemplatesDir, name), content)
}

// WriteParams writes a file under params/
func (e *TestEnvironment) WriteParams(name, content string) string {
	return e.write(e.Paths.Asset(paths.ParamsDir, name), content)
}

// Home joins rel onto the home directory
func (e *TestEnvironment) Home(rel string) string {
	return filepath.Join(e.HomeDir, rel)
}

// ReadFile reads path through the environment's filesystem
func (e *TestEnvironment) ReadFile(path string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(path)
	if err != nil {
		e.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func (e *TestEnvironment) write(path, content string) string {
	e.t.Helper()
	if err := e.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create dir for %s: %v", path, err)
	}
	if err := e.FS.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
