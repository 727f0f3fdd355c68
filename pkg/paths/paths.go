package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/zapp/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for zapp
	EnvConfigDir = "ZAPP_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Layout of the configuration root
const (
	// AppDirName is the directory name under the XDG config home
	AppDirName = "zapp"

	// ConfigFileName is the root configuration file
	ConfigFileName = "config.yaml"

	// FilesDir holds copy and symlink sources
	FilesDir = "files"

	// TemplatesDir holds render templates
	TemplatesDir = "templates"

	// ParamsDir holds parameter files
	ParamsDir = "params"

	// TasksDir holds external task-definition files
	TasksDir = "tasks"

	// TaskFileExt is appended to a task group reference to find its file
	TaskFileExt = ".yaml"
)

// Paths resolves everything relative to one configuration root
type Paths struct {
	root string
}

// New creates a Paths rooted at configRoot. An empty configRoot is
// resolved from ZAPP_CONFIG_DIR, then from the XDG config home.
func New(configRoot string) (*Paths, error) {
	if configRoot == "" {
		configRoot = os.Getenv(EnvConfigDir)
	}
	if configRoot == "" {
		configRoot = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	absRoot, err := filepath.Abs(ExpandPath(configRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to get absolute path for config root").
			WithDetail("path", configRoot)
	}

	return &Paths{root: absRoot}, nil
}

// Root returns the configuration root directory
func (p *Paths) Root() string {
	return p.root
}

// ConfigFile returns the path of config.yaml
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.root, ConfigFileName)
}

// Asset resolves assetPath inside the assetDir subdirectory of the root.
// The home shorthand is expanded first; absolute paths are used verbatim.
func (p *Paths) Asset(assetDir, assetPath string) string {
	expanded := ExpandPath(assetPath)
	if filepath.IsAbs(expanded) {
		return expanded
	}
	return filepath.Join(p.root, assetDir, expanded)
}

// TaskFile returns the external task-definition file for a group reference
func (p *Paths) TaskFile(name string) string {
	return p.Asset(TasksDir, name+TaskFileExt)
}

// ExpandPath expands a leading ~ to the user's home directory.
// Paths that do not start with ~ or ~/ are returned unchanged, as is the
// input when no home directory can be determined.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		// ~user is not expanded
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	return filepath.Join(homeDir, path[2:])
}
