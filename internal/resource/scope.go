package resource

import (
	"fmt"
	"regexp"
)

// Scope is a view of a resolver below a fixed prefix, backed by a defaults
// tree for keys no overlay has provided. Components ship their own English
// defaults and read through a Scope, so they render sensibly before any
// locale bundle is applied.
type Scope struct {
	r        *Resolver
	prefix   string
	defaults map[string]any
}

// Scope returns a view of r below prefix. defaults is addressed relative to
// the prefix.
func (r *Resolver) Scope(prefix string, defaults map[string]any) *Scope {
	return &Scope{r: r, prefix: prefix, defaults: normalizeTree(defaults)}
}

// Text resolves key below the prefix, then in the defaults tree.
func (s *Scope) Text(key string) string {
	full := s.path(key)
	if v, ok := s.r.lookupString(full); ok {
		return v
	}
	if v, ok := lookup(s.defaults, key); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return InvalidKeyPrefix + full
}

// Get resolves key below the prefix, then in the defaults tree.
func (s *Scope) Get(key string) (any, bool) {
	if v, ok := s.r.Get(s.path(key)); ok {
		return v, true
	}
	v, ok := lookup(s.defaults, key)
	if !ok {
		return nil, false
	}
	return Normalize(v), true
}

// Format resolves key like Text and substitutes its placeholders.
func (s *Scope) Format(key string, params map[string]any) string {
	return Interpolate(s.Text(key), params)
}

// Sub narrows the scope by one more prefix.
func (s *Scope) Sub(prefix string) *Scope {
	sub, _ := lookup(s.defaults, prefix)
	tree, _ := sub.(map[string]any)
	return &Scope{r: s.r, prefix: s.path(prefix), defaults: normalizeTree(tree)}
}

func (s *Scope) path(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "." + key
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Interpolate replaces {{name}} placeholders with values from params.
// Placeholders without a value are left untouched.
func Interpolate(text string, params map[string]any) string {
	if len(params) == 0 {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		v, ok := params[name]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}
