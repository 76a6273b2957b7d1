package apiclient

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// RequestConfig holds per-request options. Base URL, credentials and param
// serialization are not part of it; they are fixed by Config.
type RequestConfig struct {
	// Params are appended to the request URL.
	Params Params `mapstructure:"params"`

	// Headers are added to (and override) the default request headers.
	Headers map[string]string `mapstructure:"headers"`

	// Timeout bounds this request. Numbers decoded from a map are
	// milliseconds.
	Timeout time.Duration `mapstructure:"timeout"`

	// Data is the request body when it travels inside the config, which is
	// how older Delete callers pass it.
	Data any `mapstructure:"data"`
}

// configKeys are the keys that make a map look like a RequestConfig rather
// than a request body.
var configKeys = []string{"data", "params", "headers", "timeout"}

// firstConfig returns the first config of an optional variadic argument.
func firstConfig(configs []RequestConfig) *RequestConfig {
	if len(configs) == 0 {
		return nil
	}
	cfg := configs[0]
	return &cfg
}

// asRequestConfig decides whether the second argument of Delete is a config.
// A string-keyed map carrying any recognized config key is a config, even when
// it was meant as a body that happens to contain such a key.
func asRequestConfig(v any) (*RequestConfig, bool, error) {
	switch c := v.(type) {
	case RequestConfig:
		return &c, true, nil
	case *RequestConfig:
		return c, true, nil
	}

	m, ok := stringKeyedMap(v)
	if !ok || !hasConfigKey(m) {
		return nil, false, nil
	}
	cfg, err := decodeRequestConfig(m)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// stringKeyedMap copies any map with string keys into a map[string]any.
func stringKeyedMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func hasConfigKey(m map[string]any) bool {
	for _, k := range configKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func decodeRequestConfig(m map[string]any) (*RequestConfig, error) {
	var cfg RequestConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			millisecondsHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode request config: %w", err)
	}
	return &cfg, nil
}

// millisecondsHook turns numeric timeouts into milliseconds.
func millisecondsHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	}
	return data, nil
}
