package hierarchy

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/uniface/api"
)

// Record is a dynamically shaped record, as decoded from JSON or YAML.
type Record = map[string]any

// FieldOptions builds store options for dynamic records from the field names
// in schema. Roots are records whose parent field is absent, empty, or equal
// to schema.RootParent.
func FieldOptions(schema api.TreeSchema) Options[string, Record] {
	schema = schema.WithDefaults()
	keyField, parentField, textField := schema.KeyField, schema.ParentKeyField, schema.TextField

	opts := Options[string, Record]{
		Key:       func(r Record) string { return FieldString(r[keyField]) },
		ParentKey: func(r Record) string { return FieldString(r[parentField]) },
		Text: func(r Record) string {
			if text := FieldString(r[textField]); text != "" {
				return text
			}
			return FieldString(r[keyField])
		},
		IsRoot: func(r Record) bool {
			parent := FieldString(r[parentField])
			return parent == "" || (schema.RootParent != "" && parent == schema.RootParent)
		},
		ExpandDepth: schema.ExpandDepth,
	}

	if rule := schema.Directory; rule != nil && rule.Field != "" {
		opts.IsDirectory = func(n *Node[Record]) bool {
			v, ok := n.Item[rule.Field]
			if !ok {
				return false
			}
			if rule.Value == "" {
				return truthy(v)
			}
			return FieldString(v) == rule.Value
		}
	}

	if field := schema.SortField; field != "" {
		opts.Compare = func(a, b Record) int {
			return compareFields(a[field], b[field])
		}
	}
	return opts
}

// FieldString renders a record field as a key string. JSON numbers print
// without a trailing ".0", nil renders empty.
func FieldString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func compareFields(a, b any) int {
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		return cmp.Compare(fa, fb)
	}
	return strings.Compare(FieldString(a), FieldString(b))
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "false" && x != "0"
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	return true
}
