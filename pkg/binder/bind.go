package binder

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
)

// Query binds query parameters using the "query" tag.
func Query(v any, values map[string]any) error {
	return bindToStruct(v, values, ErrFailedToParseQuery, "query")
}

// Body binds a decoded body using the "form" tag, then "json".
func Body(v any, values map[string]any) error {
	return bindToStruct(v, values, ErrFailedToParseBody, "form", "json")
}

// Params binds merged parameters using the "param" tag, then "form" and
// "query".
func Params(v any, values map[string]any) error {
	return bindToStruct(v, values, ErrFailedToParseParams, "param", "form", "query")
}

// Path binds router path parameters using the "path" tag.
func Path(v any, params map[string]string) error {
	values := make(map[string]any, len(params))
	for k, p := range params {
		values[k] = p
	}
	return bindToStruct(v, values, ErrFailedToParsePath, "path")
}

// Map binds values using the given tags in priority order.
func Map(v any, values map[string]any, tags ...string) error {
	return bindToStruct(v, values, ErrFailedToParseParams, tags...)
}

// bindToStruct binds values to the struct pointed to by v.
// bindErr is the specific error to use for binding failures.
func bindToStruct(v any, values map[string]any, bindErr error, tags ...string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}

	if err := bindStruct(rv, values, tags, ""); err != nil {
		return fmt.Errorf("%w: %v", bindErr, err)
	}
	return nil
}

func bindStruct(rv reflect.Value, values map[string]any, tags []string, prefix string) error {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		name, tagged, skip := parseFieldTag(fieldType, tags)
		if skip {
			continue
		}

		// Embedded structs are flattened; exported fields of an unexported
		// embedded struct stay settable.
		if fieldType.Anonymous && !tagged && indirectKind(fieldType.Type) == reflect.Struct {
			if fieldType.Type.Kind() == reflect.Pointer && field.IsNil() {
				if !field.CanSet() {
					continue
				}
				field.Set(reflect.New(fieldType.Type.Elem()))
			}
			if err := bindStruct(reflect.Indirect(field), values, tags, prefix); err != nil {
				return err
			}
			continue
		}

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		value, exists := values[name]
		if !exists || value == nil {
			// No value provided, leave as zero value
			continue
		}

		if err := setFieldValue(field, fieldType.Type, value, tags, prefix+fieldType.Name); err != nil {
			return err
		}
	}

	return nil
}

// parseFieldTag returns the parameter name from the first tag present, and
// whether the field is skipped.
func parseFieldTag(field reflect.StructField, tags []string) (name string, tagged, skip bool) {
	for _, tagName := range tags {
		tag, ok := field.Tag.Lookup(tagName)
		if !ok || tag == "" {
			continue
		}
		if tag == "-" {
			return "", true, true
		}
		// Handle comma-separated tag options (e.g., "name,omitempty")
		name, _, _ = strings.Cut(tag, ",")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		return name, true, false
	}
	// No tag, use field name in lowercase
	return strings.ToLower(field.Name), false, false
}

func indirectKind(t reflect.Type) reflect.Kind {
	if t.Kind() == reflect.Pointer {
		return t.Elem().Kind()
	}
	return t.Kind()
}

// setFieldValue converts value into field's type.
func setFieldValue(field reflect.Value, fieldType reflect.Type, value any, tags []string, path string) error {
	// Handle pointer types
	if fieldType.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), value, tags, path)
	}

	switch fieldType.Kind() {
	case reflect.Interface:
		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(fieldType) {
			return fmt.Errorf("field %s: cannot assign %T", path, value)
		}
		field.Set(rv)
		return nil

	case reflect.Struct:
		m, ok := asMap(value)
		if !ok {
			return fmt.Errorf("field %s: expected an object, got %T", path, value)
		}
		return bindStruct(field, m, tags, path+".")

	case reflect.Map:
		return setMapValue(field, fieldType, value, tags, path)

	case reflect.Slice:
		return setSliceValue(field, fieldType, value, tags, path)
	}

	s, ok := scalarString(value)
	if !ok {
		return fmt.Errorf("field %s: expected a scalar, got %T", path, value)
	}
	if err := setScalar(field, fieldType, s); err != nil {
		return fmt.Errorf("field %s: %v", path, err)
	}
	return nil
}

func setScalar(field reflect.Value, fieldType reflect.Type, value string) error {
	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			// Be lenient with boolean values
			switch strings.ToLower(value) {
			case "on", "yes":
				b = true
			case "off", "no", "":
				b = false
			default:
				return fmt.Errorf("invalid bool value %q", value)
			}
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

// setSliceValue accepts lists, index-keyed maps and comma-separated strings.
func setSliceValue(field reflect.Value, fieldType reflect.Type, value any, tags []string, path string) error {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case map[string]any:
		items = make([]any, 0, len(v))
		for i := range len(v) {
			item, ok := v[strconv.Itoa(i)]
			if !ok {
				return fmt.Errorf("field %s: expected a list, got an object", path)
			}
			items = append(items, item)
		}
	case string:
		for part := range strings.SplitSeq(v, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	default:
		items = []any{v}
	}

	slice := reflect.MakeSlice(fieldType, len(items), len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		if err := setFieldValue(slice.Index(i), fieldType.Elem(), item, tags, path+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}

func setMapValue(field reflect.Value, fieldType reflect.Type, value any, tags []string, path string) error {
	if fieldType.Key().Kind() != reflect.String {
		return fmt.Errorf("field %s: map keys must be strings", path)
	}
	m, ok := asMap(value)
	if !ok {
		return fmt.Errorf("field %s: expected an object, got %T", path, value)
	}

	out := reflect.MakeMapWithSize(fieldType, len(m))
	for k, item := range m {
		elem := reflect.New(fieldType.Elem()).Elem()
		if item != nil {
			if err := setFieldValue(elem, fieldType.Elem(), item, tags, path+"."+k); err != nil {
				return err
			}
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(fieldType.Key()), elem)
	}
	field.Set(out)
	return nil
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case bodyparser.Record:
		return v.Fields(), true
	default:
		return nil, false
	}
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case json.Number:
		return v.String(), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
