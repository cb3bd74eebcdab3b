// Package bundlegen renders a resource tree as Go source, so a locale bundle
// can be compiled into a binary instead of being read at start-up.
package bundlegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"math"
	"slices"
	"strconv"

	"mvdan.cc/gofumpt/format"
)

// ErrUnsupportedValue is returned for tree values that have no Go literal
// form, such as structs or channels.
var ErrUnsupportedValue = errors.New("unsupported bundle value")

type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Func names the generated function. Defaults to "Defaults".
	Func string
	// Source is mentioned in the generated header, usually the bundle path.
	Source string
}

// Generate returns a gofumpt-formatted Go file declaring a function that
// returns tree as a fresh map[string]any on every call. Map keys are
// emitted in sorted order so output is stable across runs.
func Generate(opts Options, tree map[string]any) ([]byte, error) {
	if opts.Func == "" {
		opts.Func = "Defaults"
	}
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("invalid package name %q", opts.Package)
	}
	if !token.IsIdentifier(opts.Func) {
		return nil, fmt.Errorf("invalid function name %q", opts.Func)
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by uniface bundle gen")
	if opts.Source != "" {
		fmt.Fprintf(&buf, " from %s", opts.Source)
	}
	buf.WriteString(". DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", opts.Package)
	fmt.Fprintf(&buf, "// %s returns a fresh copy of the compiled-in resource tree.\n", opts.Func)
	fmt.Fprintf(&buf, "func %s() map[string]any {\nreturn ", opts.Func)
	if err := writeMap(&buf, tree, ""); err != nil {
		return nil, err
	}
	buf.WriteString("\n}\n")

	out, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

func writeValue(buf *bytes.Buffer, v any, path string) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("nil")
	case string:
		buf.WriteString(strconv.Quote(x))
	case bool:
		buf.WriteString(strconv.FormatBool(x))
	case int:
		buf.WriteString(strconv.Itoa(x))
	case int64:
		fmt.Fprintf(buf, "int64(%d)", x)
	case uint64:
		fmt.Fprintf(buf, "uint64(%d)", x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %v at %q", ErrUnsupportedValue, x, path)
		}
		fmt.Fprintf(buf, "float64(%s)", strconv.FormatFloat(x, 'g', -1, 64))
	case map[string]any:
		return writeMap(buf, x, path)
	case []any:
		return writeSlice(buf, x, path)
	case []string:
		seq := make([]any, len(x))
		for i, s := range x {
			seq[i] = s
		}
		return writeSlice(buf, seq, path)
	default:
		return fmt.Errorf("%w: %T at %q", ErrUnsupportedValue, v, path)
	}
	return nil
}

func writeMap(buf *bytes.Buffer, m map[string]any, path string) error {
	if len(m) == 0 {
		buf.WriteString("map[string]any{}")
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buf.WriteString("map[string]any{\n")
	for _, k := range keys {
		fmt.Fprintf(buf, "%s: ", strconv.Quote(k))
		if err := writeValue(buf, m[k], join(path, k)); err != nil {
			return err
		}
		buf.WriteString(",\n")
	}
	buf.WriteString("}")
	return nil
}

func writeSlice(buf *bytes.Buffer, seq []any, path string) error {
	if len(seq) == 0 {
		buf.WriteString("[]any{}")
		return nil
	}
	buf.WriteString("[]any{\n")
	for i, v := range seq {
		if err := writeValue(buf, v, join(path, strconv.Itoa(i))); err != nil {
			return err
		}
		buf.WriteString(",\n")
	}
	buf.WriteString("}")
	return nil
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}
