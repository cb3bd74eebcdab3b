package bundle

import (
	"fmt"
	"math/big"
	"path"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/ohler55/ojg/oj"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/uniface/internal/resource"
)

func supported(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json", ".hcl":
		return true
	}
	return false
}

// Decode turns one bundle file into a resource tree. The extension of name
// picks the format.
func Decode(name string, data []byte) (map[string]any, error) {
	ext := path.Ext(name)
	var raw any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		raw = m
	case ".json":
		v, err := oj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		raw = v
	case ".hcl":
		v, err := decodeHCL(name, data)
		if err != nil {
			return nil, err
		}
		raw = v
	default:
		return nil, fmt.Errorf("unsupported bundle format %q", ext)
	}

	if raw == nil {
		return map[string]any{}, nil
	}
	tree, ok := resource.Normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("bundle root must be a mapping, got %T", raw)
	}
	return tree, nil
}

// decodeHCL maps attributes to keys and blocks to nested trees. Block labels
// add one nesting level each, so `calendar "fr" { ... }` lands under
// calendar.fr.
func decodeHCL(name string, data []byte) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode hcl: %w", diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("decode hcl: unexpected body type %T", file.Body)
	}
	return hclBody(body)
}

func hclBody(body *hclsyntax.Body) (map[string]any, error) {
	out := map[string]any{}
	for key, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("decode hcl attribute %s: %w", key, diags)
		}
		v, err := ctyToAny(val)
		if err != nil {
			return nil, fmt.Errorf("decode hcl attribute %s: %w", key, err)
		}
		out[key] = v
	}
	for _, block := range body.Blocks {
		inner, err := hclBody(block.Body)
		if err != nil {
			return nil, err
		}
		keys := append([]string{block.Type}, block.Labels...)
		node := out
		for _, seg := range keys[:len(keys)-1] {
			next, ok := node[seg].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[seg] = next
			}
			node = next
		}
		leaf := keys[len(keys)-1]
		merged, _ := resource.Merge(node[leaf], inner).(map[string]any)
		node[leaf] = merged
	}
	return out, nil
}

func ctyToAny(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			conv, err := ctyToAny(e)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
		}
		return out, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := map[string]any{}
		for it := v.ElementIterator(); it.Next(); {
			k, e := it.Element()
			conv, err := ctyToAny(e)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = conv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported hcl type %s", ty.FriendlyName())
}
