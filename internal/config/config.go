// Package config loads and validates the iconbuilder configuration: the
// ordered list of icon-set descriptors plus output, vendor and history
// settings.
package config

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/iconbuilder/internal/naming"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	IconSets []IconSet     `yaml:"icon_sets"`
	Output   OutputConfig  `yaml:"output"`
	Vendor   VendorConfig  `yaml:"vendor,omitempty"`
	History  HistoryConfig `yaml:"history,omitempty"`
}

// IconSet describes one icon family: how to discover its files, how to name
// its members, and the metadata shipped in the manifest and license output.
// Descriptors are immutable once loaded.
type IconSet struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Files       string      `yaml:"files"` // glob pattern, resolved relative to the working directory
	Prefix      string      `yaml:"prefix,omitempty"`
	Suffix      string      `yaml:"suffix,omitempty"`
	ProjectURL  string      `yaml:"project_url"`
	License     string      `yaml:"license"`
	LicenseURL  string      `yaml:"license_url"`
	Description string      `yaml:"description,omitempty"` // markdown, rendered on the preview page
	Source      *SourceRepo `yaml:"source,omitempty"`

	// Formatter overrides the prefix/suffix-derived name formatter. Only
	// settable programmatically by embedders; YAML configs use prefix/suffix.
	Formatter naming.Formatter `yaml:"-"`
}

// SourceRepo points at the upstream repository an icon set is vendored from.
type SourceRepo struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
	Depth  int    `yaml:"depth,omitempty"` // shallow clone depth, 0 = full history
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// VendorConfig controls where fetched icon sources land.
type VendorConfig struct {
	Directory string `yaml:"directory,omitempty"`
}

// HistoryConfig controls the build-history store. An empty path disables it.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// FormatterFunc returns the name formatter for the set: the programmatic
// override when present, otherwise one derived from prefix/suffix, otherwise
// nil (pascal-cased name used as-is).
func (s *IconSet) FormatterFunc() naming.Formatter {
	if s.Formatter != nil {
		return s.Formatter
	}
	if s.Prefix == "" && s.Suffix == "" {
		return nil
	}
	return naming.Affixed(s.Prefix, s.Suffix)
}

// Load loads configuration from the specified file. A .env file in the
// working directory is loaded first (best effort) and environment variables
// referenced in the YAML are expanded before unmarshalling.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output.Directory == "" {
		c.Output.Directory = "./icons"
	}
	if c.Vendor.Directory == "" {
		c.Vendor.Directory = "./vendor-icons"
	}
	for i := range c.IconSets {
		set := &c.IconSets[i]
		if set.Source != nil && set.Source.Branch == "" {
			set.Source.Branch = "main"
		}
	}
}

// Validate checks descriptor invariants: ids present and unique, discovery
// patterns present.
func (c *Config) Validate() error {
	if len(c.IconSets) == 0 {
		return fmt.Errorf("config: no icon sets defined")
	}
	seen := make(map[string]struct{}, len(c.IconSets))
	for _, set := range c.IconSets {
		if set.ID == "" {
			return fmt.Errorf("config: icon set %q has no id", set.Name)
		}
		if _, dup := seen[set.ID]; dup {
			return fmt.Errorf("config: duplicate icon set id %q", set.ID)
		}
		seen[set.ID] = struct{}{}
		if set.Files == "" {
			return fmt.Errorf("config: icon set %q has no files pattern", set.ID)
		}
	}
	return nil
}
