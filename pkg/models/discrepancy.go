package models

// Discrepancy is a disagreement between annotators on one question, as
// computed by the backend. The per-annotator breakdown is kept raw.
type Discrepancy struct {
	ID       int64  `json:"id,omitempty"`
	Question string `json:"question"`
	Status   string `json:"status,omitempty"`
	Data     JSON   `json:"data,omitempty"`
}

// DiscrepancyHistoryTask identifies an asynchronous discrepancy history export.
type DiscrepancyHistoryTask struct {
	TaskID string `json:"task_id"`
}
