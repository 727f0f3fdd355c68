// Package paths provides centralized path handling for zapp.
//
// It resolves the configuration root (flag, ZAPP_CONFIG_DIR, then the XDG
// config home), maps asset names to files under that root, expands the
// home-directory shorthand in user-supplied paths and handles the octal
// permission strings tasks may carry.
package paths
