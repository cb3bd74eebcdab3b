package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/uniface/api"
)

func writeSchema(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSchema(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		s, err := LoadSchema("")
		require.NoError(t, err)
		assert.Equal(t, api.DefaultKeyField, s.KeyField)
		assert.Equal(t, api.DefaultParentKeyField, s.ParentKeyField)
		assert.Equal(t, api.DefaultTextField, s.TextField)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeSchema(t, "menu.yaml", `
key_field: code
parent_key_field: parent
directory:
  field: kind
  value: dir
sort_field: order
expand_depth: 2
`)
		s, err := LoadSchema(path)
		require.NoError(t, err)
		assert.Equal(t, "code", s.KeyField)
		assert.Equal(t, "parent", s.ParentKeyField)
		assert.Equal(t, "text", s.TextField)
		require.NotNil(t, s.Directory)
		assert.Equal(t, api.DirectoryRule{Field: "kind", Value: "dir"}, *s.Directory)
		assert.Equal(t, "order", s.SortField)
		assert.Equal(t, 2, s.ExpandDepth)
	})

	t.Run("json", func(t *testing.T) {
		path := writeSchema(t, "menu.json", `{"key_field": "uid", "root_parent": "0"}`)
		s, err := LoadSchema(path)
		require.NoError(t, err)
		assert.Equal(t, "uid", s.KeyField)
		assert.Equal(t, "0", s.RootParent)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)

		_, err = LoadSchema(writeSchema(t, "bad.yaml", "key_field: [unclosed"))
		assert.Error(t, err)

		_, err = LoadSchema(writeSchema(t, "neg.yaml", "expand_depth: -1\n"))
		assert.ErrorContains(t, err, "expand_depth")
	})
}
