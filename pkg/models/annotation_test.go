package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisonResult_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ComparisonResult{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user1": [], "user2": []}`, string(data))

	start, end := 0, 4
	data, err = json.Marshal(ComparisonResult{
		User1: []AnnotationItem{{ID: 1, StartOffset: &start, EndOffset: &end}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user1": [{"id": 1, "start_offset": 0, "end_offset": 4}], "user2": []}`, string(data))
}

func TestComparisonResult_IsEmpty(t *testing.T) {
	assert.True(t, EmptyComparison().IsEmpty())
	assert.True(t, ComparisonResult{}.IsEmpty())
	assert.False(t, ComparisonResult{User2: []AnnotationItem{{ID: 1}}}.IsEmpty())

	empty := EmptyComparison()
	assert.NotNil(t, empty.User1)
	assert.NotNil(t, empty.User2)
}

func TestMultiUserAnnotationMap_MarshalJSON(t *testing.T) {
	m := MultiUserAnnotationMap{
		"5": {{ID: 1}},
		"6": nil,
	}
	assert.Equal(t, 2, m.Users())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"5": [{"id": 1}], "6": []}`, string(data))
}

func TestAnnotationItem_IsSpan(t *testing.T) {
	offset := 3
	assert.True(t, AnnotationItem{StartOffset: &offset, EndOffset: &offset}.IsSpan())
	assert.False(t, AnnotationItem{StartOffset: &offset}.IsSpan())
	assert.False(t, AnnotationItem{}.IsSpan())
}

func TestJSON(t *testing.T) {
	var d Discrepancy
	require.NoError(t, json.Unmarshal([]byte(`{"question": "q", "data": {"alice": 1}}`), &d))
	assert.Equal(t, `{"alice": 1}`, d.Data.String())

	var decoded map[string]int
	require.NoError(t, d.Data.Decode(&decoded))
	assert.Equal(t, map[string]int{"alice": 1}, decoded)

	out, err := json.Marshal(Discrepancy{Question: "q"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"question": "q"}`, string(out))

	assert.Error(t, JSON(nil).Decode(&decoded))
}
