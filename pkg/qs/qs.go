package qs

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultMaxDepth is the default bracket nesting limit.
	DefaultMaxDepth = 64
	// DefaultMaxVars is the default number of pairs decoded from one input.
	DefaultMaxVars = 1000
)

// Option configures Parse.
type Option func(*options)

type options struct {
	maxDepth int
	maxVars  int
}

// WithMaxDepth sets the maximum number of bracket segments per name.
// Pairs nested deeper are dropped. Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithMaxVars sets the maximum number of pairs decoded; the rest are ignored.
// Non-positive values are ignored.
func WithMaxVars(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxVars = n
		}
	}
}

// Parse decodes raw into a nested map. It never returns nil.
func Parse(raw string, opts ...Option) map[string]any {
	o := options{maxDepth: DefaultMaxDepth, maxVars: DefaultMaxVars}
	for _, opt := range opts {
		opt(&o)
	}

	root := newNode()
	vars := 0

	for pair := range strings.SplitSeq(raw, "&") {
		if pair == "" {
			continue
		}
		if vars >= o.maxVars {
			break
		}
		vars++

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key := unescape(rawKey)

		base, path := splitKey(key)
		if base == "" || len(path) > o.maxDepth {
			continue
		}

		root.assign(append([]string{base}, path...), unescape(rawValue))
	}

	return root.exportMap()
}

// splitKey separates "a[b][]" into "a" and ["b", ""].
func splitKey(key string) (string, []string) {
	open := strings.IndexByte(key, '[')
	if open == -1 {
		return key, nil
	}
	if open == 0 {
		return "", nil
	}

	base, rest := key[:open], key[open:]
	var path []string

	for strings.HasPrefix(rest, "[") {
		closing := strings.IndexByte(rest, ']')
		if closing == -1 {
			if len(path) == 0 {
				return key, nil
			}
			break
		}
		path = append(path, rest[1:closing])
		rest = rest[closing+1:]
	}

	return base, path
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}

// node is an insertion-ordered container; values are string or *node.
type node struct {
	keys   []string
	values map[string]any
	next   int
}

func newNode() *node {
	return &node{values: make(map[string]any)}
}

func (n *node) assign(path []string, value string) {
	cur := n
	for _, seg := range path[:len(path)-1] {
		cur = cur.child(cur.resolve(seg))
	}
	cur.set(cur.resolve(path[len(path)-1]), value)
}

// resolve turns the empty "[]" segment into the next free index.
func (n *node) resolve(seg string) string {
	if seg == "" {
		return strconv.Itoa(n.next)
	}
	return seg
}

func (n *node) child(key string) *node {
	if existing, ok := n.values[key].(*node); ok {
		return existing
	}
	c := newNode()
	n.set(key, c)
	return c
}

func (n *node) set(key string, v any) {
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.values[key] = v

	if idx, err := strconv.Atoi(key); err == nil && idx >= n.next && strconv.Itoa(idx) == key {
		n.next = idx + 1
	}
}

func (n *node) isList() bool {
	if len(n.keys) == 0 {
		return false
	}
	for i, k := range n.keys {
		if k != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func (n *node) export() any {
	if n.isList() {
		list := make([]any, len(n.keys))
		for i, k := range n.keys {
			list[i] = exportValue(n.values[k])
		}
		return list
	}
	return n.exportMap()
}

func (n *node) exportMap() map[string]any {
	m := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		m[k] = exportValue(n.values[k])
	}
	return m
}

func exportValue(v any) any {
	if c, ok := v.(*node); ok {
		return c.export()
	}
	return v
}
