// Package resource resolves localized strings and configuration values from
// a nested resource tree addressed by dot-paths such as
// "uniface.calendar.months". Overlay trees (locale bundles, application
// overrides) are deep-merged onto the current tree at runtime.
package resource

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ohler55/ojg/jp"
)

// InvalidKeyPrefix starts the placeholder returned for unresolvable text.
const InvalidKeyPrefix = "Invalid key: "

// Resolver holds one resource tree. Construct it at application start-up
// and hand it to every consumer.
type Resolver struct {
	mu   sync.RWMutex
	tree map[string]any
}

// New returns a resolver seeded with a copy of base.
func New(base map[string]any) *Resolver {
	return &Resolver{tree: normalizeTree(base)}
}

// NewDefault returns a resolver seeded with the compiled-in English resources.
func NewDefault() *Resolver {
	return New(Defaults())
}

// SetResource merges overlay onto the current tree. Calls accumulate: every
// overlay layers on top of everything merged before it.
func (r *Resolver) SetResource(overlay map[string]any) {
	next := Normalize(overlay)
	r.mu.Lock()
	defer r.mu.Unlock()
	if merged, ok := merge(r.tree, next).(map[string]any); ok {
		r.tree = merged
	}
}

// Get resolves key and returns a copy of the value found there.
func (r *Resolver) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := lookup(r.tree, key)
	if !ok {
		return nil, false
	}
	return Normalize(v), true
}

// Text resolves key to a string. When the key is missing or does not hold
// a string it returns a placeholder naming the key.
func (r *Resolver) Text(key string) string {
	return r.TextDefault(key, InvalidKeyPrefix+key)
}

// TextDefault resolves key to a string, returning def when the key is
// missing or does not hold a string.
func (r *Resolver) TextDefault(key, def string) string {
	if s, ok := r.lookupString(key); ok {
		return s
	}
	return def
}

// Strings resolves key to a sequence of strings, such as month names.
func (r *Resolver) Strings(key string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := lookup(r.tree, key)
	if !ok {
		return nil, false
	}
	return toStrings(v)
}

// Format resolves key and substitutes its {{name}} placeholders from params.
func (r *Resolver) Format(key string, params map[string]any) string {
	return Interpolate(r.Text(key), params)
}

// Query evaluates a JSONPath selector against the tree, e.g.
// "$.uniface.calendar.months[0:3]".
func (r *Resolver) Query(selector string) ([]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	results := x.Get(r.tree)
	out := make([]any, len(results))
	for i, v := range results {
		out[i] = Normalize(v)
	}
	return out, nil
}

// Snapshot returns a deep copy of the current tree.
func (r *Resolver) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return normalizeTree(r.tree)
}

func (r *Resolver) lookupString(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := lookup(r.tree, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// lookup walks a dot-path. Numeric segments index into sequences. A nil
// value counts as missing.
func lookup(root any, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	cur := root
	for _, seg := range strings.Split(key, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

func toStrings(v any) ([]string, bool) {
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(seq))
	for i, e := range seq {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
