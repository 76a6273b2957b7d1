package repository

import (
	"context"
	"fmt"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/models"
)

// DiscrepancyRepository reads and updates annotator disagreements computed by
// the backend.
type DiscrepancyRepository struct {
	api API
}

// NewDiscrepancyRepository creates a repository backed by api.
func NewDiscrepancyRepository(api API) *DiscrepancyRepository {
	return &DiscrepancyRepository{api: api}
}

// List returns the discrepancies computed on the fly for a project.
func (r *DiscrepancyRepository) List(ctx context.Context, projectID string, params apiclient.Params) (models.JSON, error) {
	// The backend route is spelled "discrepacies".
	resp, err := r.api.Get(ctx, projectPath(projectID, "discrepacies"), apiclient.RequestConfig{Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to list discrepancies: %w", err)
	}
	return models.JSON(resp.Data), nil
}

// PostDiscrepancies stores a batch of discrepancies.
func (r *DiscrepancyRepository) PostDiscrepancies(ctx context.Context, projectID string, data any) (models.JSON, error) {
	resp, err := r.api.Post(ctx, projectPath(projectID, "discrepancies", "postdiscrepancies"), data)
	if err != nil {
		return nil, fmt.Errorf("failed to post discrepancies: %w", err)
	}
	return models.JSON(resp.Data), nil
}

// ListDB returns the discrepancies stored for a project.
func (r *DiscrepancyRepository) ListDB(ctx context.Context, projectID string) ([]models.Discrepancy, error) {
	resp, err := r.api.Get(ctx, projectPath(projectID, "discrepancies"))
	if err != nil {
		return nil, fmt.Errorf("failed to list stored discrepancies: %w", err)
	}

	discrepancies := []models.Discrepancy{}
	if err := resp.Decode(&discrepancies); err != nil {
		return nil, err
	}
	return discrepancies, nil
}

// UpdateStatus toggles the resolution status of the discrepancy on question.
func (r *DiscrepancyRepository) UpdateStatus(ctx context.Context, projectID, question string) (*models.Discrepancy, error) {
	resp, err := r.api.Patch(ctx, projectPath(projectID, "discrepancies", question, "update-status"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update discrepancy status: %w", err)
	}

	var d models.Discrepancy
	if err := resp.Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
