package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Encode(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected string
	}{
		{
			name:     "array values repeat the key",
			params:   Params{"ids": []int{1, 2}},
			expected: "ids=1&ids=2",
		},
		{
			name:     "array order is preserved",
			params:   Params{"user_id": []string{"38", "1", "7"}},
			expected: "user_id=38&user_id=1&user_id=7",
		},
		{
			name:     "scalars",
			params:   Params{"doc_id": 12, "user_id": "3"},
			expected: "doc_id=12&user_id=3",
		},
		{
			name:     "keys are sorted",
			params:   Params{"b": 1, "a": 2, "c": []int{3, 4}},
			expected: "a=2&b=1&c=3&c=4",
		},
		{
			name:     "components escaped like encodeURIComponent",
			params:   Params{"q": "a b&c=d/é", "k y": "(ok)!*~'"},
			expected: "k%20y=(ok)!*~'&q=a%20b%26c%3Dd%2F%C3%A9",
		},
		{
			name:     "nil values are skipped",
			params:   Params{"version_id": nil, "doc_id": 1},
			expected: "doc_id=1",
		},
		{
			name:     "empty slice produces no pair",
			params:   Params{"ids": []int{}},
			expected: "",
		},
		{
			name:     "nil params",
			params:   nil,
			expected: "",
		},
		{
			name:     "arrays and byte slices",
			params:   Params{"pair": [2]int{5, 6}, "raw": []byte("xy")},
			expected: "pair=5&pair=6&raw=xy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.params.Encode())
		})
	}
}

func TestParams_EncodePointer(t *testing.T) {
	v := 9
	var missing *int

	assert.Equal(t, "a=9", Params{"a": &v, "b": missing}.Encode())
}
