package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agentic-research/uniface/api"
)

// LoadSchema reads a tree schema from a YAML or JSON file. An empty path
// returns the default schema.
func LoadSchema(path string) (api.TreeSchema, error) {
	if path == "" {
		return api.TreeSchema{}.WithDefaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return api.TreeSchema{}, fmt.Errorf("read schema %s: %w", path, err)
	}
	var s api.TreeSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return api.TreeSchema{}, fmt.Errorf("parse schema %s: %w", path, err)
	}
	if s.ExpandDepth < 0 {
		return api.TreeSchema{}, fmt.Errorf("schema %s: expand_depth must not be negative", path)
	}
	return s.WithDefaults(), nil
}
