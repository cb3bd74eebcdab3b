package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	cases := []struct {
		name    string
		base    any
		overlay any
		want    any
	}{
		{
			name:    "maps merge key by key",
			base:    map[string]any{"a": map[string]any{"x": 1, "y": 2}},
			overlay: map[string]any{"a": map[string]any{"y": 3, "z": 4}},
			want:    map[string]any{"a": map[string]any{"x": 1, "y": 3, "z": 4}},
		},
		{
			name:    "sequences merge by index",
			base:    []any{"Jan", "Feb", "Mar"},
			overlay: []any{"一月"},
			want:    []any{"一月", "Feb", "Mar"},
		},
		{
			name:    "longer overlay sequence appends",
			base:    []any{"a"},
			overlay: []any{"b", "c"},
			want:    []any{"b", "c"},
		},
		{
			name:    "maps inside sequences merge",
			base:    []any{map[string]any{"k": 1, "l": 2}},
			overlay: []any{map[string]any{"l": 3}},
			want:    []any{map[string]any{"k": 1, "l": 3}},
		},
		{
			name:    "type mismatch takes overlay",
			base:    map[string]any{"a": []any{"x"}},
			overlay: map[string]any{"a": map[string]any{"b": "c"}},
			want:    map[string]any{"a": map[string]any{"b": "c"}},
		},
		{
			name:    "nil overlay keeps base",
			base:    map[string]any{"a": "keep", "b": []any{"x", "y"}},
			overlay: map[string]any{"a": nil, "b": []any{nil, "z"}},
			want:    map[string]any{"a": "keep", "b": []any{"x", "z"}},
		},
		{
			name:    "nil base takes overlay",
			base:    nil,
			overlay: map[string]any{"a": "b"},
			want:    map[string]any{"a": "b"},
		},
		{
			name:    "typed containers normalize",
			base:    map[string]string{"a": "b"},
			overlay: map[string][]string{"c": {"d"}},
			want:    map[string]any{"a": "b", "c": []any{"d"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Merge(tc.base, tc.overlay))
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": 1}, "s": []any{"p"}}
	overlay := map[string]any{"a": map[string]any{"x": 2}, "s": []any{"q", "r"}}

	merged := Merge(base, overlay).(map[string]any)
	merged["a"].(map[string]any)["x"] = 99
	merged["s"].([]any)[0] = "changed"

	assert.Equal(t, map[string]any{"a": map[string]any{"x": 1}, "s": []any{"p"}}, base)
	assert.Equal(t, map[string]any{"a": map[string]any{"x": 2}, "s": []any{"q", "r"}}, overlay)
}

func TestMerge_Composes(t *testing.T) {
	base := map[string]any{"a": 1}
	once := Merge(Merge(base, map[string]any{"b": 2}), map[string]any{"c": 3})
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, once)
}

func TestNormalize(t *testing.T) {
	type label struct{ Text string }
	assert.Equal(t, []any{1, 2}, Normalize([2]int{1, 2}))
	assert.Equal(t, map[string]any{"1": "x"}, Normalize(map[int]string{1: "x"}))
	assert.Equal(t, "raw", Normalize([]byte("raw")))
	assert.Nil(t, Normalize((*label)(nil)))
	assert.Equal(t, map[string]any{"k": "v"}, Normalize(map[any]any{"k": "v"}))
}
