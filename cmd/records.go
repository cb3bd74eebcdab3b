package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/uniface/internal/hierarchy"
	"github.com/agentic-research/uniface/internal/recordstore"
)

// readRecords loads a flat record list from a JSON or YAML array, or from a
// database written by "uniface import".
func readRecords(ctx context.Context, path string) ([]hierarchy.Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".db" || ext == ".sqlite" {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		s, err := recordstore.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = s.Close() }()
		return recordstore.LoadAll[hierarchy.Record](ctx, s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if ext == ".yaml" || ext == ".yml" {
		var records []hierarchy.Record
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return records, nil
	}

	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parse %s: expected an array of records, got %T", path, v)
	}
	records := make([]hierarchy.Record, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parse %s: record %d is %T, not an object", path, i, item)
		}
		records = append(records, rec)
	}
	return records, nil
}
