package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements the koanf provider interface for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// DefaultConfigPath returns the user config file location under the XDG
// config home.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "tidy", "tidy.toml")
}

// Load reads configuration from the default user path.
func Load() (*AppConfig, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom layers embedded defaults, the given file (if it exists) and
// TIDY_ environment variables, then validates the result.
func LoadFrom(path string) (*AppConfig, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
			}
			logger.Debug().Str("path", path).Msg("loaded user config")
		}
	}

	if err := k.Load(env.Provider("TIDY_", ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("templates", len(cfg.Templates)).
		Int("metadataRules", len(cfg.MetadataRules)).
		Int("filenameRules", len(cfg.FilenameRules)).
		Msg("configuration loaded")

	return &cfg, nil
}

// envKey maps TIDY_PREFERENCES_CASE_NORMALIZATION to
// preferences.case_normalization. Single-word path elements join with
// dots; the rest of the key keeps its underscores.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "TIDY_"))
	for _, section := range []string{"preferences"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}
