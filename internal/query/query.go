// Package query turns typed query structs into URL query values.
//
// Fields are named by their `url` struct tag. Fields tagged with
// omitempty that hold their zero value are dropped, as are nil pointers
// and empty slices regardless of tags, so an unset optional parameter is
// never sent as an empty value. Slices are sent as a single comma
// separated value.
package query

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

const TagName = "url"

// Encode converts v into url.Values. v may be nil, a struct, a pointer to
// a struct, url.Values or a map[string]string.
func Encode(v any) (url.Values, error) {
	values := url.Values{}
	switch v := v.(type) {
	case nil:
		return values, nil
	case url.Values:
		for k, vs := range v {
			values[k] = append([]string(nil), vs...)
		}
		return values, nil
	case map[string]string:
		for k, s := range v {
			if s != "" {
				values.Set(k, s)
			}
		}
		return values, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return values, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("query must be a struct, got %T", v)
	}

	var fields map[string]any
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: TagName,
		Result:  &fields,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create query decoder: %w", err)
	}
	if err := decoder.Decode(rv.Interface()); err != nil {
		return nil, fmt.Errorf("failed to decode query %T: %w", v, err)
	}

	for name, field := range fields {
		if name == "" || name == "-" {
			continue
		}
		s, ok, err := format(reflect.ValueOf(field))
		if err != nil {
			return nil, fmt.Errorf("failed to encode query parameter %q: %w", name, err)
		}
		if ok {
			values.Set(name, s)
		}
	}
	return values, nil
}

// format renders a single parameter. ok is false when the value is unset.
func format(rv reflect.Value) (string, bool, error) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return "", false, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return "", false, nil
	}

	if s, ok := rv.Interface().(fmt.Stringer); ok {
		out := s.String()
		return out, out != "", nil
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), rv.Len() > 0, nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), true, nil
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			s, ok, err := format(rv.Index(i))
			if err != nil {
				return "", false, err
			}
			if ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), len(parts) > 0, nil
	default:
		return "", false, fmt.Errorf("unsupported kind %s", rv.Kind())
	}
}
