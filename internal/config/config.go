package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration for reggen
type Config struct {
	// OutDir receives the generated files
	OutDir string `json:"outdir,omitempty" toml:"outdir,omitempty"`

	// Extension of generated files, without the dot
	Extension string `json:"extension,omitempty" toml:"extension,omitempty"`

	// TemplateDir overrides the built-in templates file by file
	TemplateDir string `json:"templateDir,omitempty" toml:"templateDir,omitempty"`

	// AliasImpl applies an alias implementation to blocks that declare none
	AliasImpl string `json:"aliasImpl,omitempty" toml:"aliasImpl,omitempty"`

	// Inputs is a list of glob patterns for description files
	Inputs []string `json:"inputs,omitempty" toml:"inputs,omitempty"`

	// Exclude is a list of glob patterns removed from Inputs
	Exclude []string `json:"exclude,omitempty" toml:"exclude,omitempty"`

	// Policy controls the naming policy check
	Policy PolicyConfig `json:"policy,omitempty" toml:"policy,omitempty"`

	// Log controls logger construction
	Log LogConfig `json:"log,omitempty" toml:"log,omitempty"`

	// Timing controls per-artifact timing output
	Timing TimingConfig `json:"timing,omitempty" toml:"timing,omitempty"`
}

// PolicyConfig contains naming policy configuration
type PolicyConfig struct {
	// Enabled runs the policies before generation
	Enabled *bool `json:"enabled,omitempty" toml:"enabled,omitempty"`

	// Dir holds additional .rego files
	Dir string `json:"dir,omitempty" toml:"dir,omitempty"`

	// Rules maps rule names to severity: "off", "info", "warning", "error"
	Rules map[string]string `json:"rules,omitempty" toml:"rules,omitempty"`
}

// LogConfig contains logging options
type LogConfig struct {
	// Level is a logrus level name
	Level string `json:"level,omitempty" toml:"level,omitempty"`

	// Format is "text" or "json"
	Format string `json:"format,omitempty" toml:"format,omitempty"`
}

// TimingConfig controls the JSONL timing recorder
type TimingConfig struct {
	// Path of the JSONL file; empty disables timing
	Path string `json:"path,omitempty" toml:"path,omitempty"`
}

const (
	defaultOutDir    = "."
	defaultExtension = "sv"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		OutDir:    defaultOutDir,
		Extension: defaultExtension,
		Inputs:    []string{"*.json", "*.cue", "*.yaml", "data/**/*.json", "data/**/*.cue", "data/**/*.yaml"},
		Exclude:   []string{"reggen.json", ".reggen.json"},
		Policy: PolicyConfig{
			Enabled: boolPtr(true),
			Rules:   map[string]string{},
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Load finds and loads the configuration file
// Search order:
//  1. ./reggen.json (current working directory)
//  2. ./.reggen.json (current working directory)
//  3. ./reggen.toml (current working directory)
//  4. <rootPath>/reggen.json, <rootPath>/.reggen.json (if different from cwd)
//  5. ~/.config/reggen/config.json
//
// Returns DefaultConfig if no config file is found
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "reggen.json"),
		filepath.Join(cwd, ".reggen.json"),
		filepath.Join(cwd, "reggen.toml"),
	}

	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "reggen.json"),
				filepath.Join(rootPath, ".reggen.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "reggen", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file. Files ending in
// .toml are parsed as TOML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.OutDir == "" {
		c.OutDir = defaultOutDir
	}
	c.Extension = strings.TrimPrefix(c.Extension, ".")
	if c.Extension == "" {
		c.Extension = defaultExtension
	}
	if c.Policy.Enabled == nil {
		c.Policy.Enabled = boolPtr(true)
	}
	if c.Policy.Rules == nil {
		c.Policy.Rules = make(map[string]string)
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = toml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// PolicyEnabled reports whether naming policies run before generation
func (c *Config) PolicyEnabled() bool {
	return c.Policy.Enabled == nil || *c.Policy.Enabled
}

// GetRuleSeverity returns the severity for a rule, or the default if not configured
func (c *Config) GetRuleSeverity(rule string, defaultSeverity string) string {
	if severity, ok := c.Policy.Rules[rule]; ok {
		return severity
	}
	return defaultSeverity
}

// IsRuleEnabled returns true if the rule is not set to "off"
func (c *Config) IsRuleEnabled(rule string) bool {
	if severity, ok := c.Policy.Rules[rule]; ok {
		return severity != "off"
	}
	return true
}
