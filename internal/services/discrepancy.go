package services

import (
	"context"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/models"
	"github.com/annotation-forge/annotator/pkg/repository"
)

// DiscrepancyRepository is the data access the discrepancy service needs.
type DiscrepancyRepository interface {
	List(ctx context.Context, projectID string, params apiclient.Params) (models.JSON, error)
	PostDiscrepancies(ctx context.Context, projectID string, data any) (models.JSON, error)
	ListDB(ctx context.Context, projectID string) ([]models.Discrepancy, error)
}

var _ DiscrepancyRepository = (*repository.DiscrepancyRepository)(nil)

// DiscrepancyService exposes annotator disagreements.
type DiscrepancyService struct {
	repo DiscrepancyRepository
}

// NewDiscrepancyService creates a new discrepancy service
func NewDiscrepancyService(repo DiscrepancyRepository) *DiscrepancyService {
	return &DiscrepancyService{repo: repo}
}

// ListDiscrepancies returns the discrepancies computed for a project.
func (s *DiscrepancyService) ListDiscrepancies(ctx context.Context, projectID string, params apiclient.Params) (models.JSON, error) {
	return s.repo.List(ctx, projectID, params)
}

// PostDiscrepancies stores a batch of discrepancies.
func (s *DiscrepancyService) PostDiscrepancies(ctx context.Context, projectID string, data any) (models.JSON, error) {
	return s.repo.PostDiscrepancies(ctx, projectID, data)
}

// GetDiscrepanciesDB returns the discrepancies stored for a project.
func (s *DiscrepancyService) GetDiscrepanciesDB(ctx context.Context, projectID string) ([]models.Discrepancy, error) {
	return s.repo.ListDB(ctx, projectID)
}
