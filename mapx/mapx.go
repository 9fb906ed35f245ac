// Package mapx evaluates small jq-style paths over decoded JSON documents
// (map[string]any, []any and primitives).
//
// Supported syntax:
//
//	.foo.bar           object field access
//	.foo[0] .foo[-1]   array index, negative counts from the end
//	.foo[*] .*         wildcard over arrays / objects
//	.["complex key"]   quoted keys
package mapx

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type segmentKind int

const (
	segField segmentKind = iota
	segIndex
	segWildcard
)

type segment struct {
	kind  segmentKind
	field string
	index int
}

// Get returns all values matching path. Missing fields or out of range
// indexes yield no results; only a malformed path is an error.
func Get(root any, path string) ([]any, error) {
	segs, err := parse(path)
	if err != nil {
		return nil, err
	}
	frontier := []any{root}
	for _, s := range segs {
		var next []any
		for _, node := range frontier {
			next = append(next, apply(node, s)...)
		}
		frontier = next
	}
	return frontier, nil
}

// GetOne expects path to match exactly one value.
func GetOne(root any, path string) (any, error) {
	vals, err := Get(root, path)
	if err != nil {
		return nil, err
	}
	switch len(vals) {
	case 0:
		return nil, errors.New("no value found for path")
	case 1:
		return vals[0], nil
	default:
		return nil, fmt.Errorf("path matched %d values; expected one", len(vals))
	}
}

// GetString is GetOne for values that must be non-empty strings.
func GetString(root any, path string) (string, error) {
	v, err := GetOne(root, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("value at %s is not a non-empty string", path)
	}
	return s, nil
}

func apply(node any, s segment) []any {
	switch s.kind {
	case segField:
		if m, ok := node.(map[string]any); ok {
			if v, ok := m[s.field]; ok {
				return []any{v}
			}
		}
	case segIndex:
		if arr, ok := node.([]any); ok {
			i := s.index
			if i < 0 {
				i += len(arr)
			}
			if i >= 0 && i < len(arr) {
				return []any{arr[i]}
			}
		}
	case segWildcard:
		switch t := node.(type) {
		case []any:
			return append([]any(nil), t...)
		case map[string]any:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := make([]any, 0, len(keys))
			for _, k := range keys {
				out = append(out, t[k])
			}
			return out
		}
	}
	return nil
}

func parse(path string) ([]segment, error) {
	p := strings.TrimSpace(path)
	if p == "" || p == "." {
		return nil, nil
	}
	var segs []segment
	i := 0
	for i < len(p) {
		switch p[i] {
		case '.':
			i++
			if i < len(p) && p[i] == '*' {
				segs = append(segs, segment{kind: segWildcard})
				i++
				continue
			}
			if i < len(p) && p[i] == '[' {
				continue
			}
			start := i
			for i < len(p) && isIdentPart(p[i]) {
				i++
			}
			if start == i {
				return nil, fmt.Errorf("parse error at %d: field name expected", i)
			}
			segs = append(segs, segment{kind: segField, field: p[start:i]})
		case '[':
			end := strings.IndexByte(p[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("parse error at %d: unterminated [", i)
			}
			inner := strings.TrimSpace(p[i+1 : i+end])
			seg, err := parseBracket(inner)
			if err != nil {
				return nil, fmt.Errorf("parse error at %d: %w", i, err)
			}
			segs = append(segs, seg)
			i += end + 1
		default:
			return nil, fmt.Errorf("parse error at %d: unexpected character %q", i, p[i])
		}
	}
	return segs, nil
}

func parseBracket(inner string) (segment, error) {
	if inner == "*" {
		return segment{kind: segWildcard}, nil
	}
	if n := len(inner); n >= 2 && (inner[0] == '"' || inner[0] == '\'') && inner[n-1] == inner[0] {
		return segment{kind: segField, field: inner[1 : n-1]}, nil
	}
	idx, err := strconv.Atoi(inner)
	if err != nil {
		return segment{}, fmt.Errorf("number, '*', or quoted key expected inside [], got %q", inner)
	}
	return segment{kind: segIndex, index: idx}, nil
}

func isIdentPart(b byte) bool {
	return b == '_' || b == '-' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
