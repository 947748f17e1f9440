package config

import (
	"os"
	"path/filepath"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/tidyapp/tidy/pkg/errors"
)

// Defaults returns the embedded default configuration, decoded.
func Defaults() (*AppConfig, error) {
	var cfg AppConfig
	if err := gotoml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode embedded defaults")
	}
	return &cfg, nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrConfigLoad, "config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to create config directory")
	}
	if err := os.WriteFile(path, defaultConfig, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to write config file")
	}
	return nil
}

// Save marshals the configuration to TOML at path. Used after rule CRUD to
// persist changes.
func Save(cfg *AppConfig, path string) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to encode configuration")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to create config directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to write config file")
	}
	return nil
}
