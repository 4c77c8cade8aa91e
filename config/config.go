package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the codemap tool.
type Config struct {
	Index Index `yaml:"index"`
	Watch Watch `yaml:"watch"`
}

// Index holds file selection and indexing configuration.
type Index struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	Workers  int      `yaml:"workers"` // 0 means one per CPU
}

// Watch holds watch-mode configuration.
type Watch struct {
	DebounceMillis int `yaml:"debounce_millis"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: Index{
			Includes: []string{"**/*.c", "**/*.h", "**/*.cpp", "**/*.cc", "**/*.cxx", "**/*.hpp", "**/*.hh", "**/*.hxx"},
			Excludes: []string{"**/.git/**", "**/build/**", "**/cmake-build-*/**", "**/third_party/**", "**/vendor/**", "**/node_modules/**"},
			Workers:  0,
		},
		Watch: Watch{
			DebounceMillis: 500,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for codemap.yaml,
// then .codemap/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "codemap.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".codemap", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MapDBPath returns the path to the map database.
func MapDBPath(dir string) string {
	return filepath.Join(dir, ".codemap", "map.db")
}

// EnsureMapDir ensures the .codemap directory exists.
func EnsureMapDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".codemap"), 0755)
}
