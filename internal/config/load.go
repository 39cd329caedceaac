package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDir   = "brushcat"
	fileName = "config.yaml"

	// EnvConfig names a config file when -config is not given.
	EnvConfig = "BRUSHCAT_CONFIG"
)

// Load builds the configuration from defaults, then the first config file
// found, then command-line flags, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFile(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// configFile picks the file to read: the -config flag, then $BRUSHCAT_CONFIG,
// then config.yaml in the working directory or ConfigDir. Explicit paths are
// returned even if missing so the read reports them.
func configFile() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	for _, dir := range []string{".", ConfigDir()} {
		p := filepath.Join(dir, fileName)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for brushcat.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, appDir)
}

// loadFromFile decodes path over the values already in cfg. Unknown keys are
// errors. A relative assets.dir set by the file is taken relative to the
// file's directory.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	assetDir := cfg.Assets.Dir

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if cfg.Assets.Dir != assetDir && !filepath.IsAbs(cfg.Assets.Dir) {
		cfg.Assets.Dir = filepath.Join(filepath.Dir(path), cfg.Assets.Dir)
	}
	return nil
}
