// Package config loads zapp's root configuration and parameter files.
//
// The root config.yaml is layered over embedded defaults and ZAPP_*
// environment variables with koanf. Parameter files (YAML or TOML) are
// merged in declared order into the context used to render templates.
package config
