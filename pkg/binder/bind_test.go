package binder_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/binder"
)

type pagination struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

type listUsers struct {
	pagination
	Tags   []string `query:"tags"`
	IDs    []int64  `query:"ids"`
	Filter struct {
		Status string `query:"status"`
		Active *bool  `query:"active"`
	} `query:"filter"`
	Cursor  *string           `query:"cursor"`
	Labels  map[string]string `query:"labels"`
	Score   float64           `query:"score"`
	Secret  string            `query:"-"`
	Name    string
	private string
}

func TestQuery(t *testing.T) {
	t.Parallel()

	values := map[string]any{
		"page":   "2",
		"limit":  "50",
		"tags":   []any{"a", "b"},
		"ids":    "1, 2,3",
		"filter": map[string]any{"status": "open", "active": "on"},
		"cursor": "abc",
		"labels": map[string]any{"env": "prod"},
		"score":  "9.5",
		"secret": "leak",
		"name":   "alice",
	}

	var in listUsers
	require.NoError(t, binder.Query(&in, values))

	assert.Equal(t, 2, in.Page)
	assert.Equal(t, 50, in.Limit)
	assert.Equal(t, []string{"a", "b"}, in.Tags)
	assert.Equal(t, []int64{1, 2, 3}, in.IDs)
	assert.Equal(t, "open", in.Filter.Status)
	require.NotNil(t, in.Filter.Active)
	assert.True(t, *in.Filter.Active)
	require.NotNil(t, in.Cursor)
	assert.Equal(t, "abc", *in.Cursor)
	assert.Equal(t, map[string]string{"env": "prod"}, in.Labels)
	assert.InDelta(t, 9.5, in.Score, 0.0001)
	assert.Empty(t, in.Secret)
	assert.Equal(t, "alice", in.Name)
	assert.Empty(t, in.private)
}

func TestQueryMissingValuesKeepZero(t *testing.T) {
	t.Parallel()

	var in listUsers
	require.NoError(t, binder.Query(&in, map[string]any{"page": nil}))
	assert.Zero(t, in.Page)
	assert.Nil(t, in.Cursor)
	assert.Nil(t, in.Tags)
}

func TestBodyDecodedTypes(t *testing.T) {
	t.Parallel()

	type item struct {
		SKU string `json:"sku"`
		Qty uint   `json:"qty"`
	}
	type order struct {
		ID      int64          `json:"id"`
		Paid    bool           `json:"paid"`
		Total   float32        `form:"amount" json:"total"`
		Items   []item         `json:"items"`
		Indexed []string       `json:"indexed"`
		Meta    any            `json:"meta"`
		Extra   map[string]int `json:"extra"`
	}

	values := map[string]any{
		"id":      float64(42),
		"paid":    true,
		"amount":  json.Number("19.99"),
		"items":   []any{map[string]any{"sku": "A1", "qty": float64(2)}, nil},
		"indexed": map[string]any{"0": "x", "1": "y"},
		"meta":    map[string]any{"k": "v"},
		"extra":   map[string]any{"a": 1},
	}

	var in order
	require.NoError(t, binder.Body(&in, values))

	assert.Equal(t, int64(42), in.ID)
	assert.True(t, in.Paid)
	assert.InDelta(t, 19.99, in.Total, 0.001)
	require.Len(t, in.Items, 2)
	assert.Equal(t, item{SKU: "A1", Qty: 2}, in.Items[0])
	assert.Equal(t, item{}, in.Items[1])
	assert.Equal(t, []string{"x", "y"}, in.Indexed)
	assert.Equal(t, map[string]any{"k": "v"}, in.Meta)
	assert.Equal(t, map[string]int{"a": 1}, in.Extra)
}

func TestParamsTagPriority(t *testing.T) {
	t.Parallel()

	type input struct {
		A string `param:"alpha" query:"a"`
		B string `form:"beta"`
		C string `query:"gamma"`
	}

	var in input
	require.NoError(t, binder.Params(&in, map[string]any{
		"alpha": "1",
		"a":     "ignored",
		"beta":  "2",
		"gamma": "3",
	}))
	assert.Equal(t, input{A: "1", B: "2", C: "3"}, in)

	var custom struct {
		X string `header:"x-value"`
	}
	require.NoError(t, binder.Map(&custom, map[string]any{"x-value": "v"}, "header"))
	assert.Equal(t, "v", custom.X)
}

func TestBindErrors(t *testing.T) {
	t.Parallel()

	type target struct {
		N      int `query:"n"`
		Nested struct {
			M int `query:"m"`
		} `query:"nested"`
		List []int `query:"list"`
		Ch   chan int
	}

	tests := []struct {
		name   string
		values map[string]any
		msg    string
	}{
		{name: "invalid int", values: map[string]any{"n": "abc"}, msg: `field N: invalid int value "abc"`},
		{name: "nested path", values: map[string]any{"nested": map[string]any{"m": "x"}}, msg: "field Nested.M"},
		{name: "object for struct expected", values: map[string]any{"nested": "flat"}, msg: "expected an object"},
		{name: "list element", values: map[string]any{"list": []any{"1", "two"}}, msg: "field List[1]"},
		{name: "scalar expected", values: map[string]any{"n": []any{}}, msg: "expected a scalar"},
		{name: "unsupported kind", values: map[string]any{"ch": "1"}, msg: "unsupported type chan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var in target
			err := binder.Query(&in, tt.values)
			require.Error(t, err)
			assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	var notStruct int
	err := binder.Query(&notStruct, nil)
	assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	assert.ErrorIs(t, binder.Body(nil, nil), binder.ErrInvalidTarget)
	assert.ErrorIs(t, binder.Params(listUsers{}, nil), binder.ErrInvalidTarget)
}

func TestBoolLeniency(t *testing.T) {
	t.Parallel()

	type flags struct {
		A bool `form:"a"`
		B bool `form:"b"`
		C bool `form:"c"`
		D bool `form:"d"`
	}
	var in flags
	require.NoError(t, binder.Body(&in, map[string]any{"a": "yes", "b": "1", "c": "off", "d": ""}))
	assert.Equal(t, flags{A: true, B: true}, in)

	err := binder.Body(&in, map[string]any{"a": "maybe"})
	assert.ErrorIs(t, err, binder.ErrFailedToParseBody)
}

func TestPath(t *testing.T) {
	t.Parallel()

	type profile struct {
		ID       int64  `path:"id"`
		Username string `path:"username"`
		Tab      string `path:"tab"`
	}

	var in profile
	require.NoError(t, binder.Path(&in, map[string]string{"id": "7", "username": "alice"}))
	assert.Equal(t, profile{ID: 7, Username: "alice"}, in)

	err := binder.Path(&in, map[string]string{"id": "seven"})
	assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
}
