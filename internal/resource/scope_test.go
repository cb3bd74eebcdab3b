package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tableDefaults = map[string]any{
	"rowNo":   "#",
	"actions": "Actions",
	"paging": map[string]any{
		"summary": "{{from}}-{{to}} of {{total}}",
	},
}

func TestScope_PrefersResolver(t *testing.T) {
	r := New(map[string]any{"uniface": map[string]any{"dataTable": map[string]any{"rowNo": "序号"}}})
	s := r.Scope("uniface.dataTable", tableDefaults)

	assert.Equal(t, "序号", s.Text("rowNo"))
	assert.Equal(t, "Actions", s.Text("actions"))
	assert.Equal(t, "Invalid key: uniface.dataTable.missing", s.Text("missing"))
}

func TestScope_TracksLaterOverlays(t *testing.T) {
	r := New(nil)
	s := r.Scope("uniface.dataTable", tableDefaults)
	assert.Equal(t, "Actions", s.Text("actions"))

	r.SetResource(map[string]any{"uniface": map[string]any{"dataTable": map[string]any{"actions": "Opérations"}}})
	assert.Equal(t, "Opérations", s.Text("actions"))
}

func TestScope_SubAndFormat(t *testing.T) {
	r := New(nil)
	paging := r.Scope("uniface.dataTable", tableDefaults).Sub("paging")

	assert.Equal(t, "1-20 of 95", paging.Format("summary", map[string]any{"from": 1, "to": 20, "total": 95}))

	v, ok := paging.Get("summary")
	require.True(t, ok)
	assert.Equal(t, "{{from}}-{{to}} of {{total}}", v)

	r.SetResource(map[string]any{"uniface": map[string]any{"dataTable": map[string]any{"paging": map[string]any{"summary": "{{total}} rows"}}}})
	assert.Equal(t, "95 rows", paging.Format("summary", map[string]any{"total": 95}))
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, "Selected: 2/{{total}}", Interpolate("Selected: {{selected}}/{{total}}", map[string]any{"selected": 2}))
	assert.Equal(t, "a b", Interpolate("a {{ name }}", map[string]any{"name": "b"}))
	assert.Equal(t, "plain", Interpolate("plain", nil))
}
