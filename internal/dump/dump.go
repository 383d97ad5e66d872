// Package dump renders values as indented field listings for debugging.
package dump

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// MaxDepth is the deepest level DumpRecursive descends into.
const MaxDepth = 1

const (
	maxDepthReached = "<Maximum Depth Reached>"
	unableToEval    = "<Unable to Evaluate>"
)

type entry struct {
	name  string
	value reflect.Value
}

// Dump lists the immediate fields, keys or elements of v under a header line
// holding name. Values that have no members are rendered with fmt.Sprint.
func Dump(v any, name string) string {
	entries, ok := members(reflect.ValueOf(v))
	if !ok {
		return format(reflect.ValueOf(v))
	}

	var sb strings.Builder
	sb.WriteString(name + "\n")
	for _, e := range entries {
		sb.WriteString(e.name + ": " + format(e.value) + "\n")
	}
	return sb.String()
}

// DumpRecursive is like Dump but descends into nested values, indenting each
// level with a tab. depth counts the levels already descended.
func DumpRecursive(v any, name, indent string, depth int) string {
	return dumpValue(reflect.ValueOf(v), name, indent, depth)
}

func dumpValue(v reflect.Value, name, indent string, depth int) string {
	if depth > MaxDepth {
		return indent + name + ": " + maxDepthReached + "\n"
	}

	entries, ok := members(v)
	if !ok {
		return indent + name + ": " + format(v) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(indent + name + "\n")
	for _, e := range entries {
		if _, nested := members(e.value); nested {
			sb.WriteString(dumpValue(e.value, e.name, indent+"\t", depth+1))
			continue
		}
		sb.WriteString(indent + "\t" + e.name + ": " + format(e.value) + "\n")
	}
	return sb.String()
}

// Field wraps v as a zap field rendered with DumpRecursive.
func Field(name string, v any) zap.Field {
	return zap.String(name, DumpRecursive(v, name, "", 0))
}

func members(v reflect.Value) ([]entry, bool) {
	if v.IsValid() && v.CanInterface() {
		switch v.Interface().(type) {
		case error, fmt.Stringer:
			return nil, false
		}
	}
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		entries := make([]entry, 0, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			entries = append(entries, entry{name: t.Field(i).Name, value: v.Field(i)})
		}
		return entries, true
	case reflect.Map:
		keys := v.MapKeys()
		entries := make([]entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, entry{name: format(k), value: v.MapIndex(k)})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
		return entries, true
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, false
		}
		entries := make([]entry, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			entries = append(entries, entry{name: fmt.Sprint(i), value: v.Index(i)})
		}
		return entries, true
	}
	return nil, false
}

// format renders a single value. Values that cannot be read, such as
// unexported fields or Stringers that panic, become unableToEval.
func format(v reflect.Value) (s string) {
	defer func() {
		if recover() != nil {
			s = unableToEval
		}
	}()

	if !v.IsValid() {
		return "<nil>"
	}
	if !v.CanInterface() {
		return unableToEval
	}

	// fmt recovers panics from these methods itself
	switch x := v.Interface().(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
