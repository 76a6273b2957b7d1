package models

import "encoding/json"

// AnnotationItem is a single annotation produced by one user on one document.
//
// Span annotations carry offsets; category and free-text annotations do not,
// so every field except ID is optional and nil when the backend omits it.
type AnnotationItem struct {
	ID          int64   `json:"id"`
	StartOffset *int    `json:"start_offset,omitempty"`
	EndOffset   *int    `json:"end_offset,omitempty"`
	Label       *int64  `json:"label,omitempty"`
	Text        *string `json:"text,omitempty"`
	User        *int64  `json:"user,omitempty"`
}

// IsSpan reports whether the annotation covers a character range.
func (a AnnotationItem) IsSpan() bool {
	return a.StartOffset != nil && a.EndOffset != nil
}

// ComparisonResult pairs two annotators' sets for one document.
// The two sides are not cross-validated.
type ComparisonResult struct {
	User1 []AnnotationItem `json:"user1"`
	User2 []AnnotationItem `json:"user2"`
}

// EmptyComparison returns a result with both sides empty (never nil).
func EmptyComparison() ComparisonResult {
	return ComparisonResult{
		User1: []AnnotationItem{},
		User2: []AnnotationItem{},
	}
}

// IsEmpty reports whether neither side has annotations.
func (r ComparisonResult) IsEmpty() bool {
	return len(r.User1) == 0 && len(r.User2) == 0
}

// MarshalJSON encodes empty sides as [] instead of null.
func (r ComparisonResult) MarshalJSON() ([]byte, error) {
	type alias ComparisonResult
	out := alias(r)
	if out.User1 == nil {
		out.User1 = []AnnotationItem{}
	}
	if out.User2 == nil {
		out.User2 = []AnnotationItem{}
	}
	return json.Marshal(out)
}

// MultiUserAnnotationMap maps a user identifier to that user's annotations.
// Every requested user has an entry, even when the fetch yielded nothing.
type MultiUserAnnotationMap map[string][]AnnotationItem

// Users returns the number of users in the map.
func (m MultiUserAnnotationMap) Users() int {
	return len(m)
}

// MarshalJSON encodes empty entries as [] instead of null.
func (m MultiUserAnnotationMap) MarshalJSON() ([]byte, error) {
	out := make(map[string][]AnnotationItem, len(m))
	for user, items := range m {
		if items == nil {
			items = []AnnotationItem{}
		}
		out[user] = items
	}
	return json.Marshal(out)
}
