package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfig    = "MKR_CONFIG"
	EnvBuildFile = "MKR_BUILDFILE"
	EnvLogLevel  = "MKR_LOG_LEVEL"
	EnvLogFormat = "MKR_LOG_FORMAT"
	EnvVerbose   = "MKR_VERBOSE"
	EnvNotify    = "MKR_NOTIFY"
)

// candidates are the file names looked up in the working directory.
var candidates = []string{"mkr.yaml", "mkr.yml", "mkr.toml"}

// fileConfig is the on-disk shape. Pointer fields tell an omitted key from a
// zero value.
type fileConfig struct {
	BuildFile *string           `yaml:"build_file" toml:"build_file"`
	LogLevel  *string           `yaml:"log_level" toml:"log_level"`
	LogFormat *string           `yaml:"log_format" toml:"log_format"`
	Verbose   *bool             `yaml:"verbose" toml:"verbose"`
	Vars      map[string]string `yaml:"vars" toml:"vars"`
	Notify    *string           `yaml:"notify" toml:"notify"`
}

// Load resolves the configuration for a run in dir. getenv is usually
// os.Getenv. A relative build file is resolved against dir.
func Load(dir string, getenv func(string) string) (Config, error) {
	cfg := Default()

	path := getenv(EnvConfig)
	if path == "" {
		found, err := Find(dir)
		if err != nil && !errors.Is(err, ErrNoConfigFile) {
			return Config{}, err
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(getenv); err != nil {
		return Config{}, err
	}
	if cfg.BuildFile != "" && !filepath.IsAbs(cfg.BuildFile) {
		cfg.BuildFile = filepath.Join(dir, cfg.BuildFile)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find returns the first config file candidate present in dir.
func Find(dir string) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to check config file %s: %w", path, err)
		}
	}
	return "", ErrNoConfigFile
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.Decode(string(data), &raw)
		if err != nil {
			return fmt.Errorf("error loading config from %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("error loading config from %s: unknown key %s", path, undecoded[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("error loading config from %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file format %q", filepath.Ext(path))
	}

	if raw.BuildFile != nil {
		c.BuildFile = strings.TrimSpace(*raw.BuildFile)
		// A relative build file is relative to the config file.
		if c.BuildFile != "" && !filepath.IsAbs(c.BuildFile) {
			c.BuildFile = filepath.Join(filepath.Dir(path), c.BuildFile)
		}
	}
	if raw.LogLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.LogFormat != nil {
		c.LogFormat = strings.ToLower(strings.TrimSpace(*raw.LogFormat))
	}
	if raw.Verbose != nil {
		c.Verbose = *raw.Verbose
	}
	if raw.Notify != nil {
		c.Notify = strings.TrimSpace(*raw.Notify)
	}
	maps.Copy(c.Vars, raw.Vars)
	c.Source = path
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	if v := getenv(EnvBuildFile); v != "" {
		c.BuildFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := getenv(EnvNotify); v != "" {
		c.Notify = v
	}
	if v := getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvVerbose, v, err)
		}
		c.Verbose = verbose
	}
	return nil
}
