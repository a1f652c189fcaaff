// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and saves the flat JSON configuration document
// (prevConfig.json). Reading goes through viper so NOTEPACKET_* environment
// variables can override any scalar key; writing is a plain indented JSON
// dump through a temp file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pdiddy/notepacket/pkg/types"
)

const (
	// DefaultFile is the config file name used when --config is not given.
	DefaultFile = "prevConfig.json"

	// EnvPrefix namespaces environment overrides, e.g. NOTEPACKET_TARGET_DIR.
	EnvPrefix = "NOTEPACKET"
)

// ErrNotFound reports that the config file does not exist yet. Callers run
// first-time setup when they see it.
var ErrNotFound = errors.New("config file not found")

// Default returns the configuration written on first run when the user
// accepts every default.
func Default() types.Config {
	source, target := ".", "."
	if home, err := os.UserHomeDir(); err == nil {
		source = filepath.Join(home, "Pictures")
		target = filepath.Join(home, "Desktop")
	}
	return types.Config{
		SourceDir: source,
		TargetDir: target,
		Layout:    types.DefaultLayout(),
		Users:     []types.User{},
	}
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads the config at path. Keys absent from the file take their
// defaults; environment variables win over both. A missing file yields
// ErrNotFound.
func Load(path string) (*types.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking config %s: %w", path, err)
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if cfg.Users == nil {
		cfg.Users = []types.User{}
	}
	return &cfg, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("source_dir", d.SourceDir)
	v.SetDefault("target_dir", d.TargetDir)
	v.SetDefault("template_dir", "")
	v.SetDefault("file_names", "")
	v.SetDefault("h_margin", d.HMargin)
	v.SetDefault("v_margin", d.VMargin)
	v.SetDefault("target_w", d.TargetW)
	v.SetDefault("target_h", d.TargetH)
	v.SetDefault("x_offset1", d.XOffset1)
	v.SetDefault("y_offset1", d.YOffset1)
	v.SetDefault("x_offset2", d.XOffset2)
	v.SetDefault("y_offset2", d.YOffset2)
	return v
}

// Save writes cfg to path as two-space indented JSON. Non-ASCII names are
// written as-is. The file is replaced atomically.
func Save(path string, cfg *types.Config) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(buf.Bytes())
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing config: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
