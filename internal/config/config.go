package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config represents the mdsite configuration
type Config struct {
	ContentDir string        `yaml:"content_dir"`
	StaticDir  string        `yaml:"static_dir"`
	PublicDir  string        `yaml:"public_dir"`
	Template   string        `yaml:"template"`
	LogFile    string        `yaml:"log_file"`
	StateFile  string        `yaml:"state_file"`
	Interval   time.Duration `yaml:"-"` // Custom YAML handling below
}

// rawConfig mirrors Config with the interval as a duration string
type rawConfig struct {
	ContentDir string `yaml:"content_dir"`
	StaticDir  string `yaml:"static_dir"`
	PublicDir  string `yaml:"public_dir"`
	Template   string `yaml:"template"`
	LogFile    string `yaml:"log_file"`
	StateFile  string `yaml:"state_file"`
	Interval   string `yaml:"interval"`
}

// DefaultConfig returns default configuration, relative to the working directory
func DefaultConfig() *Config {
	return &Config{
		ContentDir: "content",
		StaticDir:  "static",
		PublicDir:  "public",
		Template:   "template.html",
		LogFile:    filepath.Join(xdg.StateHome, "mdsite", "mdsite.log"),
		StateFile:  StateFilePath(),
		Interval:   2 * time.Second,
	}
}

// LocalConfigFile is looked up in the working directory before the XDG config
const LocalConfigFile = "mdsite.yaml"

// ConfigPath returns the path to the config file
// Can be overridden for testing
var ConfigPath = func() string {
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}
	return filepath.Join(xdg.ConfigHome, "mdsite", "config.yaml")
}

// StateFilePath returns the default path of the build state file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.StateHome, "mdsite", "state.json")
}

// Load reads configuration from ConfigPath
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads configuration from path.
// A missing file or missing fields keep the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file, defaults only
	case err != nil:
		return nil, err
	default:
		if err := cfg.apply(data); err != nil {
			return nil, err
		}
	}

	// Paths are compared in absolute form
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// apply overlays the non-empty fields of a YAML document onto c
func (c *Config) apply(data []byte) error {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.ContentDir, raw.ContentDir)
	set(&c.StaticDir, raw.StaticDir)
	set(&c.PublicDir, raw.PublicDir)
	set(&c.Template, raw.Template)
	set(&c.LogFile, raw.LogFile)
	set(&c.StateFile, raw.StateFile)

	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
		}
		c.Interval = interval
	}

	return nil
}

// Save writes configuration to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		ContentDir: c.ContentDir,
		StaticDir:  c.StaticDir,
		PublicDir:  c.PublicDir,
		Template:   c.Template,
		LogFile:    c.LogFile,
		StateFile:  c.StateFile,
		Interval:   c.Interval.String(),
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.PublicDir == "" {
		return fmt.Errorf("public_dir cannot be empty")
	}
	if c.Template == "" {
		return fmt.Errorf("template cannot be empty")
	}
	if c.StateFile == "" {
		return fmt.Errorf("state_file cannot be empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	// A full build removes public_dir, so it must not hold any input
	if within(c.PublicDir, c.ContentDir) {
		return fmt.Errorf("public_dir %s must not contain content_dir %s", c.PublicDir, c.ContentDir)
	}
	if within(c.PublicDir, c.Template) {
		return fmt.Errorf("public_dir %s must not contain template %s", c.PublicDir, c.Template)
	}
	if c.StaticDir != "" {
		if within(c.PublicDir, c.StaticDir) {
			return fmt.Errorf("public_dir %s must not contain static_dir %s", c.PublicDir, c.StaticDir)
		}
		if within(c.StaticDir, c.PublicDir) {
			return fmt.Errorf("static_dir %s must not contain public_dir %s", c.StaticDir, c.PublicDir)
		}
	}

	return nil
}

// within reports whether path is dir itself or lies below it
func within(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	fields := []struct {
		name string
		ptr  *string
	}{
		{"content_dir", &c.ContentDir},
		{"static_dir", &c.StaticDir},
		{"public_dir", &c.PublicDir},
		{"template", &c.Template},
		{"log_file", &c.LogFile},
		{"state_file", &c.StateFile},
	}

	for _, f := range fields {
		expanded, err := expandPath(*f.ptr)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", f.name, err)
		}
		*f.ptr = expanded
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	return filepath.Abs(path)
}
