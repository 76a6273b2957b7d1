package repository

import (
	"context"
	"fmt"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/models"
)

// DiscrepancyHistoryRepository drives the asynchronous discrepancy history
// export.
type DiscrepancyHistoryRepository struct {
	api API
}

// NewDiscrepancyHistoryRepository creates a repository backed by api.
func NewDiscrepancyHistoryRepository(api API) *DiscrepancyHistoryRepository {
	return &DiscrepancyHistoryRepository{api: api}
}

// Prepare starts an export and returns its task id. An empty datasetName is
// sent as null.
func (r *DiscrepancyHistoryRepository) Prepare(ctx context.Context, projectID, datasetName string) (string, error) {
	body := map[string]*string{"datasetName": nil}
	if datasetName != "" {
		body["datasetName"] = &datasetName
	}

	resp, err := r.api.Post(ctx, projectPath(projectID, "discrepancy-history"), body)
	if err != nil {
		return "", fmt.Errorf("failed to prepare discrepancy history: %w", err)
	}

	var task models.DiscrepancyHistoryTask
	if err := resp.Decode(&task); err != nil {
		return "", err
	}
	if task.TaskID == "" {
		return "", fmt.Errorf("discrepancy history response has no task_id")
	}
	return task.TaskID, nil
}

// Fetch returns the rows of a prepared export.
func (r *DiscrepancyHistoryRepository) Fetch(ctx context.Context, projectID, taskID string) ([]models.JSON, error) {
	resp, err := r.api.Get(ctx, projectPath(projectID, "discrepancy-history-data"), apiclient.RequestConfig{
		Params: apiclient.Params{"taskId": taskID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discrepancy history: %w", err)
	}

	rows := []models.JSON{}
	if err := resp.Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}
