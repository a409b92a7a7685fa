// Package config loads the optional .usingorder.yaml / .usingorder.toml
// project file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/siyuan-infoblox/using-order/pkg/errors"
	"github.com/siyuan-infoblox/using-order/pkg/rules"
	"github.com/siyuan-infoblox/using-order/pkg/std"
	"github.com/siyuan-infoblox/using-order/pkg/utils"
)

// FileNames are the config file names searched for, in order of preference
var FileNames = []string{".usingorder.yaml", ".usingorder.yml", ".usingorder.toml"}

// Config is the project configuration
type Config struct {
	Rules      map[string]bool  `yaml:"rules" toml:"rules"`           // registered rule name -> enabled
	UsingOrder UsingOrderConfig `yaml:"using_order" toml:"using_order"`
	Extensions []string         `yaml:"extensions" toml:"extensions"` // source file extensions
	Exclude    []string         `yaml:"exclude" toml:"exclude"`       // directory names to skip
	Jobs       int              `yaml:"jobs" toml:"jobs"`             // 0 means one per CPU

	Path string `yaml:"-" toml:"-"` // file the config was read from, empty for defaults
}

// UsingOrderConfig holds the settings of the UsingOrder rule
type UsingOrderConfig struct {
	StandardPrefix string `yaml:"standard_prefix" toml:"standard_prefix"`
}

// Default returns the configuration used when no file is found
func Default() Config {
	return Config{
		Rules:      map[string]bool{},
		UsingOrder: UsingOrderConfig{StandardPrefix: std.DefaultPrefix},
		Extensions: append([]string(nil), utils.DefaultExtensions...),
	}
}

// Load reads a config file. Keys not present in the file keep their default
// values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".toml":
		err = decodeTOML(data, &cfg)
	default:
		err = fmt.Errorf(errors.ErrMsgUnsupportedConfigFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %s: %w", errors.ErrMsgFailedToLoadConfig, path, err)
	}

	if cfg.Rules, err = rules.Normalize(cfg.Rules); err != nil {
		return Config{}, fmt.Errorf("%s: %s: %w", errors.ErrMsgFailedToLoadConfig, path, err)
	}
	if cfg.UsingOrder.StandardPrefix == "" {
		cfg.UsingOrder.StandardPrefix = std.DefaultPrefix
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %s: %w", errors.ErrMsgFailedToLoadConfig, path, err)
	}
	return cfg, nil
}

// Discover loads the nearest config file at or above start, or returns
// Default when there is none
func Discover(start string) (Config, error) {
	path, ok := utils.FindUp(start, FileNames...)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks values that cannot be expressed by the file format
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf(errors.ErrMsgInvalidJobs, c.Jobs)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf(errors.ErrMsgInvalidExtension, ext)
		}
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf(errors.ErrMsgUnknownConfigKeys, strings.Join(keys, ", "))
	}
	return nil
}
