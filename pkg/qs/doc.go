// Package qs decodes URL-encoded query strings and form bodies into nested
// Go values using the bracket notation common to web frameworks.
//
//	qs.Parse("user[name]=jane&user[roles][]=admin&user[roles][]=dev&page=2")
//
// yields
//
//	map[string]any{
//		"user": map[string]any{
//			"name":  "jane",
//			"roles": []any{"admin", "dev"},
//		},
//		"page": "2",
//	}
//
// Leaf values are always strings. A container whose keys are exactly 0..n-1 in
// insertion order becomes a []any; every other container is a map[string]any.
// A later assignment to the same key overwrites the earlier one, so "a=1&a=2"
// decodes to {"a": "2"}; use "a[]=1&a[]=2" to collect multiple values.
//
// Malformed input never fails the parse: pairs with an empty name are
// skipped, an unterminated '[' turns the whole name into a literal key, and
// text after the last ']' is ignored. MaxDepth and MaxVars bound the work done
// for adversarial input.
package qs
