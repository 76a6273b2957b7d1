package models

import (
	"encoding/json"
	"errors"
)

// JSON is a raw JSON payload passed through from the backend untouched.
// The pass-through repositories use it where the backend contract is too loose
// to model as a struct.
type JSON json.RawMessage

// MarshalJSON implements json.Marshaler interface.
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSON: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// Decode unmarshals the payload into v.
func (j JSON) Decode(v any) error {
	if len(j) == 0 {
		return errors.New("JSON: empty payload")
	}
	return json.Unmarshal(j, v)
}

// String returns the JSON as a string.
func (j JSON) String() string {
	return string(j)
}
