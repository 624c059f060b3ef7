package bodyparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
)

type stubRecord map[string]any

func (r stubRecord) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

func (r stubRecord) Fields() map[string]any { return map[string]any(r) }

func TestValidateShape(t *testing.T) {
	t.Parallel()

	valid := []any{
		nil,
		map[string]any{"a": 1},
		map[string]any{},
		[]any{},
		[]any{map[string]any{"a": 1}, nil},
		[]any{[]any{stubRecord{"a": 1}}},
		stubRecord{"a": 1},
	}
	for _, v := range valid {
		assert.NoError(t, bodyparser.ValidateShape(v), "%T", v)
	}

	invalid := []any{
		"string",
		42,
		3.14,
		true,
		[]any{1, 2, 3},
		[]any{map[string]any{"a": 1}, "x"},
		[]any{[]any{1}},
		[]string{"a", "b"},
		[]int{1},
		map[string]string{"a": "b"},
		struct{ A int }{1},
	}
	for _, v := range invalid {
		err := bodyparser.ValidateShape(v)
		require.Error(t, err, "%T", v)
		assert.ErrorIs(t, err, bodyparser.ErrInvalidParsedBody)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("map", func(t *testing.T) {
		t.Parallel()
		body := map[string]any{"a": "1", "nil": nil}

		v, ok := bodyparser.Lookup(body, "a")
		assert.True(t, ok)
		assert.Equal(t, "1", v)

		_, ok = bodyparser.Lookup(body, "nil")
		assert.False(t, ok)

		_, ok = bodyparser.Lookup(body, "missing")
		assert.False(t, ok)
	})

	t.Run("sequence", func(t *testing.T) {
		t.Parallel()
		body := []any{"x", nil}

		v, ok := bodyparser.Lookup(body, "0")
		assert.True(t, ok)
		assert.Equal(t, "x", v)

		for _, key := range []string{"1", "2", "-1", "01", "a"} {
			_, ok = bodyparser.Lookup(body, key)
			assert.False(t, ok, key)
		}
	})

	t.Run("record", func(t *testing.T) {
		t.Parallel()
		v, ok := bodyparser.Lookup(stubRecord{"a": nil}, "a")
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("nil body", func(t *testing.T) {
		t.Parallel()
		_, ok := bodyparser.Lookup(nil, "a")
		assert.False(t, ok)
	})
}

func TestToMapAndIsEmpty(t *testing.T) {
	t.Parallel()

	src := map[string]any{"a": 1}
	m := bodyparser.ToMap(src)
	m["b"] = 2
	assert.Len(t, src, 1)

	assert.Equal(t, map[string]any{"0": "x", "1": "y"}, bodyparser.ToMap([]any{"x", "y"}))
	assert.Equal(t, map[string]any{"k": "v"}, bodyparser.ToMap(stubRecord{"k": "v"}))
	assert.Nil(t, bodyparser.ToMap(nil))

	assert.True(t, bodyparser.IsEmpty(nil))
	assert.True(t, bodyparser.IsEmpty(map[string]any{}))
	assert.True(t, bodyparser.IsEmpty([]any{}))
	assert.False(t, bodyparser.IsEmpty(map[string]any{"a": 1}))
	assert.False(t, bodyparser.IsEmpty(stubRecord{}))
}
