package schemas

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Mapping binds a filename pattern to a schema name.
type Mapping struct {
	Pattern string `yaml:"pattern"`
	Schema  string `yaml:"schema"`
}

// Config is the optional jsonls.yml mapping file. It lets documents
// that declare no schema of their own be matched by filename.
type Config struct {
	SchemaDir string    `yaml:"schemaDir,omitempty"`
	Mappings  []Mapping `yaml:"mappings"`
}

// LoadConfig reads a mapping file. A missing file is not an error; it
// yields an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// SchemaFor matches a file path against the mappings, first match wins.
// Patterns are matched against the base name.
func (c *Config) SchemaFor(path string) (string, bool) {
	base := filepath.Base(path)
	for _, m := range c.Mappings {
		if ok, err := filepath.Match(m.Pattern, base); err == nil && ok {
			return m.Schema, true
		}
	}
	return "", false
}
