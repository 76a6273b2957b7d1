package apiclient

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Params are query parameters. Slice and array values are serialized as
// repeated key=value pairs in element order, which is what the backend
// expects for multi-valued filters:
//
//	Params{"ids": []int{1, 2}}.Encode() == "ids=1&ids=2"
//
// Keys are emitted in sorted order. Nil values are skipped.
type Params map[string]any

// Encode serializes the parameters into a query string (without "?").
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		key := escapeComponent(k)
		for _, v := range paramValues(p[k]) {
			parts = append(parts, key+"="+escapeComponent(v))
		}
	}
	return strings.Join(parts, "&")
}

// paramValues flattens one parameter value into its string forms.
func paramValues(v any) []string {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		// []byte is a scalar, not a list of numbers.
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return []string{string(rv.Bytes())}
		}
		values := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			values = append(values, formatValue(rv.Index(i).Interface()))
		}
		return values
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return paramValues(rv.Elem().Interface())
	default:
		return []string{formatValue(v)}
	}
}

func formatValue(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// escapeComponent escapes s the way JavaScript's encodeURIComponent does:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded, and
// spaces become %20 rather than "+".
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
