package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	api "github.com/seqmark-dev/seqmark/pkg/api"
)

// DefaultBanner is the printf-style template for the banner line; the %d
// verb receives the bound.
const DefaultBanner = "sequence 1..%d"

// Config represents the tool configuration.
type Config struct {
	Defaults struct {
		Bound  int    `yaml:"bound"`
		Banner string `yaml:"banner"`
	} `yaml:"defaults"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Rules []api.Rule `yaml:"rules"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	var cfg Config
	cfg.Defaults.Bound = DefaultBound
	cfg.Defaults.Banner = DefaultBanner
	cfg.Store.Path = defaultStorePath()
	cfg.Rules = DefaultRules()
	return cfg
}

func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "seqmark")
}

func defaultStorePath() string {
	return filepath.Join(configDir(), "history.db")
}

// LoadConfig reads YAML configuration from a path. If path is empty, it resolves
// $XDG_CONFIG_HOME/seqmark/config.yaml or ~/.config/seqmark/config.yaml; a
// missing default file yields DefaultConfig, a missing explicit path is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if path == "" {
		path = filepath.Join(configDir(), "config.yaml")
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(content, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if file.Defaults.Bound != 0 {
		cfg.Defaults.Bound = file.Defaults.Bound
	}
	if file.Defaults.Banner != "" {
		if strings.Count(file.Defaults.Banner, "%d") != 1 {
			return cfg, fmt.Errorf("%w: banner template must contain exactly one %%d verb, got %q", ErrInvalidArgument, file.Defaults.Banner)
		}
		cfg.Defaults.Banner = file.Defaults.Banner
	}
	if file.Store.Path != "" {
		cfg.Store.Path = file.Store.Path
	}
	if len(file.Rules) > 0 {
		cfg.Rules = file.Rules
	}
	return cfg, nil
}

// LoadRules reads a standalone rule-set YAML file of the form:
//
//	rules:
//	  - divisor: 3
//	    marker: Fizz
func LoadRules(path string) ([]api.Rule, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	var doc struct {
		Rules []api.Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("%w: rules file %s defines no rules", ErrInvalidArgument, path)
	}
	return doc.Rules, nil
}
