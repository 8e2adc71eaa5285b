package fletch

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// queryParam is one (name, value) pair in the ordered query sequence. The
// value stays as given until Build renders it; rendering is where
// stringification can fail and trigger the query fallback.
type queryParam struct {
	name  string
	value any
}

// isAbsentValue reports whether a query value counts as "not provided": an
// untyped nil, a nil pointer or a nil interface.
func isAbsentValue(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}

	return false
}

// structToQueryParams converts a struct (or pointer to struct) into ordered
// query pairs. Field order follows the struct declaration, which keeps the
// rendered query deterministic. The `query` tag names the parameter, "-"
// skips the field and the omitempty option drops zero values. Slice and
// array fields expand to one pair per element.
func structToQueryParams(v any) ([]queryParam, error) {
	if v == nil {
		return nil, nil
	}

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %v", val.Kind())
	}

	var params []queryParam
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanInterface() {
			continue
		}

		tag := fieldType.Tag.Get("query")
		if tag == "-" {
			continue
		}

		name, opts := parseQueryTag(tag)
		if name == "" {
			name = fieldType.Name
		}

		if hasTagOption(opts, "omitempty") && isZeroValue(field) {
			continue
		}

		value, err := fieldToQueryValue(field)
		if err != nil {
			return nil, fmt.Errorf("failed to convert field %s: %w", fieldType.Name, err)
		}

		switch v := value.(type) {
		case nil:
		case []string:
			for _, elem := range v {
				params = append(params, queryParam{name: name, value: elem})
			}
		default:
			params = append(params, queryParam{name: name, value: v})
		}
	}

	return params, nil
}

func parseQueryTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func hasTagOption(opts []string, opt string) bool {
	for _, o := range opts {
		if o == opt {
			return true
		}
	}
	return false
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	}
	return false
}

// fieldToQueryValue renders one struct field into a query value: a string
// for scalars, a []string for slices and arrays, nil when the field carries
// nothing.
func fieldToQueryValue(v reflect.Value) (any, error) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil, nil
		}
		return fieldToQueryValue(v.Elem())

	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return nil, nil
		}
		values := make([]string, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := fieldToQueryValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			s, err := cast.ToStringE(elem)
			if err != nil {
				return nil, err
			}
			values[i] = s
		}
		return values, nil

	default:
		s, err := cast.ToStringE(v.Interface())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
