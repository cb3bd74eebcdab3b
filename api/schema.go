package api

// TreeSchema describes how flat, dynamically shaped records are arranged into
// a tree. It is loaded from JSON or YAML so the field names stay data-driven.
type TreeSchema struct {
	// Version of the schema format.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// KeyField names the unique key of a record. Defaults to "id".
	KeyField string `json:"key_field,omitempty" yaml:"key_field,omitempty"`
	// ParentKeyField names the field referencing the parent key. Defaults to "parentId".
	ParentKeyField string `json:"parent_key_field,omitempty" yaml:"parent_key_field,omitempty"`
	// TextField names the display text field. Defaults to "text".
	TextField string `json:"text_field,omitempty" yaml:"text_field,omitempty"`
	// RootParent is the parent value that marks a root, in addition to an
	// absent or empty parent.
	RootParent string `json:"root_parent,omitempty" yaml:"root_parent,omitempty"`
	// Directory selects which records count as directories (optional).
	Directory *DirectoryRule `json:"directory,omitempty" yaml:"directory,omitempty"`
	// SortField orders siblings by this field (optional).
	SortField string `json:"sort_field,omitempty" yaml:"sort_field,omitempty"`
	// ExpandDepth is the number of levels expanded after loading (optional).
	ExpandDepth int `json:"expand_depth,omitempty" yaml:"expand_depth,omitempty"`
}

// DirectoryRule marks a record as a directory when Field equals Value.
// With an empty Value, any truthy field value matches.
type DirectoryRule struct {
	Field string `json:"field" yaml:"field"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Default field names, matching the conventions of the records the widgets consume.
const (
	DefaultKeyField       = "id"
	DefaultParentKeyField = "parentId"
	DefaultTextField      = "text"
)

// WithDefaults returns a copy with unset field names filled in.
func (s TreeSchema) WithDefaults() TreeSchema {
	if s.KeyField == "" {
		s.KeyField = DefaultKeyField
	}
	if s.ParentKeyField == "" {
		s.ParentKeyField = DefaultParentKeyField
	}
	if s.TextField == "" {
		s.TextField = DefaultTextField
	}
	return s
}
