package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/annotation-forge/annotator/pkg/models"
)

// envelopeShape identifies which of the accepted response layouts carried the
// annotation list.
type envelopeShape int

const (
	shapeUnknown envelopeShape = iota
	shapeAnnotations
	shapeArray
	shapeResults
)

func (s envelopeShape) String() string {
	switch s {
	case shapeAnnotations:
		return "annotations"
	case shapeArray:
		return "array"
	case shapeResults:
		return "results"
	default:
		return "unknown"
	}
}

// decodeAnnotations unwraps an annotation list from one of the layouts the
// backend has been seen to return, checked in this order:
//
//	{"annotations": [...]}
//	[...]
//	{"results": [...]}
//
// Anything else is shapeUnknown with no items. An error is returned only when
// a recognized list holds elements that cannot be decoded.
func decodeAnnotations(data []byte) ([]models.AnnotationItem, envelopeShape, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []models.AnnotationItem{}, shapeUnknown, nil
	}

	switch data[0] {
	case '[':
		items, err := decodeItems(data)
		if err != nil {
			return []models.AnnotationItem{}, shapeArray, err
		}
		return items, shapeArray, nil

	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return []models.AnnotationItem{}, shapeUnknown, nil
		}
		for _, candidate := range []struct {
			key   string
			shape envelopeShape
		}{
			{"annotations", shapeAnnotations},
			{"results", shapeResults},
		} {
			raw := bytes.TrimSpace(fields[candidate.key])
			if len(raw) == 0 || raw[0] != '[' {
				continue
			}
			items, err := decodeItems(raw)
			if err != nil {
				return []models.AnnotationItem{}, candidate.shape, err
			}
			return items, candidate.shape, nil
		}
	}

	return []models.AnnotationItem{}, shapeUnknown, nil
}

func decodeItems(raw []byte) ([]models.AnnotationItem, error) {
	items := []models.AnnotationItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode annotation list: %w", err)
	}
	return items, nil
}
