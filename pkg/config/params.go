package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/zapp/pkg/errors"
	"github.com/arthur-debert/zapp/pkg/logging"
	"github.com/arthur-debert/zapp/pkg/paths"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadParams reads the named parameter files from params/ and merges them
// in order into a single template context. Later files win on conflicting
// keys; nested mappings are merged key by key.
func LoadParams(p *paths.Paths, names []string) (map[string]interface{}, error) {
	logger := logging.GetLogger("config.params")
	k := koanf.New(".")

	for _, name := range names {
		path := p.Asset(paths.ParamsDir, name)

		values, err := readParamsFile(path)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			logger.Debug().Str("path", path).Msg("Empty params file")
			continue
		}

		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "unable to merge param file").
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Int("keys", len(values)).Msg("Loaded params file")
	}

	return k.Raw(), nil
}

// readParamsFile decodes one params file, TOML by extension, YAML otherwise
func readParamsFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "unable to load param file").
			WithDetail("path", path)
	}

	var values map[string]interface{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &values)
	} else {
		err = yaml.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unable to parse param file").
			WithDetail("path", path)
	}

	return values, nil
}
