package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var validTypes = map[string]bool{
	"codeforces": true,
	"atcoder":    true,
	"html":       true,
	"rss":        true,
}

// Loader reads source descriptors from a directory of .yml files.
type Loader struct {
	sourcesDir string
}

func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

// LoadAll loads every descriptor, sorted by file name so run order is
// deterministic. A missing directory yields an empty list.
func (l *Loader) LoadAll() ([]*Config, error) {
	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)
	sort.Strings(files)

	configs := make([]*Config, 0, len(files))
	for _, file := range files {
		config, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(config); err != nil {
			return nil, fmt.Errorf("invalid source %s: %w", file, err)
		}

		configs = append(configs, config)
		slog.Debug("Source configuration loaded",
			"source", config.Name, "type", config.Type, "enabled", config.Enabled)
	}

	return configs, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Base(path)
	config.Name = strings.TrimSuffix(strings.TrimSuffix(base, ".yml"), ".yaml")

	l.setDefaults(&config)

	return &config, nil
}

func (l *Loader) setDefaults(config *Config) {
	if config.Timeout == 0 {
		config.Timeout = 20 // seconds
	}
	if config.List.Selector == "" {
		config.List.Selector = "a"
	}
	if config.List.Limit == 0 {
		config.List.Limit = 30
	}
	if config.Detail.Limit == 0 {
		config.Detail.Limit = 5
	}
	if config.Detail.DelayMs == 0 {
		config.Detail.DelayMs = 800
	}
	if config.Pagination.Param == "" {
		config.Pagination.Param = "page"
	}
}

func (l *Loader) validate(config *Config) error {
	if config.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if !validTypes[config.Type] {
		return fmt.Errorf("unknown source type: %s", config.Type)
	}
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if config.List.Limit < 0 {
		return fmt.Errorf("list limit must be non-negative")
	}
	if config.Pagination.Pages < 0 {
		return fmt.Errorf("pagination pages must be non-negative")
	}
	return nil
}
