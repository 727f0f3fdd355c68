package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/logging"
	"github.com/arthur-debert/zapp/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. ZAPP_SHELL
const EnvPrefix = "ZAPP_"

// envKeys are the settings that may be overridden from the environment.
// params and tasks are structured and only come from config.yaml.
var envKeys = map[string]bool{
	"shell": true,
}

// RootConfig is the decoded config.yaml
type RootConfig struct {
	// Params lists parameter file names, resolved under params/
	Params []string `koanf:"params"`

	// Tasks is the raw top-level task entry sequence
	Tasks []interface{} `koanf:"tasks"`

	// Shell is the command interpreter used by shell tasks
	Shell string `koanf:"shell"`
}

// Load reads config.yaml from the configuration root, layered over the
// embedded defaults and ZAPP_* environment variables.
func Load(p *paths.Paths) (*RootConfig, error) {
	logger := logging.GetLogger("config")
	configPath := p.ConfigFile()

	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}

	info, err := os.Stat(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "unable to open config.yaml").
			WithDetail("path", configPath)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrConfigLoad, "config.yaml is a directory").
			WithDetail("path", configPath)
	}

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unable to parse config file").
			WithDetail("path", configPath)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	for _, key := range []string{"params", "tasks"} {
		switch k.Get(key).(type) {
		case nil, []interface{}:
		default:
			return nil, errors.Newf(errors.ErrConfigInvalid, "%s must be a list", key).
				WithDetail("path", configPath)
		}
	}

	var cfg RootConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      false,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid config file").
			WithDetail("path", configPath)
	}

	if cfg.Shell == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "shell must not be empty").
			WithDetail("path", configPath)
	}

	logger.Debug().
		Str("path", configPath).
		Strs("params", cfg.Params).
		Int("tasks", len(cfg.Tasks)).
		Str("shell", cfg.Shell).
		Msg("Loaded root config")

	return &cfg, nil
}

// envValue maps ZAPP_SHELL to "shell". Keys outside envKeys and empty
// values are dropped.
func envValue(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if !envKeys[key] || value == "" {
		return "", nil
	}
	return key, value
}
