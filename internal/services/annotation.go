package services

import (
	"context"

	"github.com/annotation-forge/annotator/pkg/models"
	"github.com/annotation-forge/annotator/pkg/repository"
)

// AnnotationRepository is the data access the annotation service needs.
// *repository.AnnotationRepository implements it.
type AnnotationRepository interface {
	GetUserAnnotations(ctx context.Context, projectID, documentID, userID string) []models.AnnotationItem
	GetComparisonData(ctx context.Context, projectID, documentID, user1ID, user2ID string) models.ComparisonResult
	GetMultiUserComparisonData(ctx context.Context, projectID, documentID string, userIDs []string) models.MultiUserAnnotationMap
	FetchMultiUserComparisonData(ctx context.Context, projectID, documentID string, userIDs []string) (models.MultiUserAnnotationMap, error)
}

var _ AnnotationRepository = (*repository.AnnotationRepository)(nil)

// AnnotationService is the business-facing entry point for annotation
// comparison.
type AnnotationService struct {
	repo AnnotationRepository
}

// NewAnnotationService creates a new annotation service
func NewAnnotationService(repo AnnotationRepository) *AnnotationService {
	return &AnnotationService{repo: repo}
}

// GetUserAnnotations returns one user's annotations on a document.
func (s *AnnotationService) GetUserAnnotations(ctx context.Context, projectID, documentID, userID string) []models.AnnotationItem {
	return s.repo.GetUserAnnotations(ctx, projectID, documentID, userID)
}

// GetComparisonData returns two users' annotations side by side.
func (s *AnnotationService) GetComparisonData(ctx context.Context, projectID, documentID, user1ID, user2ID string) models.ComparisonResult {
	return s.repo.GetComparisonData(ctx, projectID, documentID, user1ID, user2ID)
}

// GetMultiUserComparisonData returns every requested user's annotations,
// keyed by user id.
func (s *AnnotationService) GetMultiUserComparisonData(ctx context.Context, projectID, documentID string, userIDs []string) models.MultiUserAnnotationMap {
	return s.repo.GetMultiUserComparisonData(ctx, projectID, documentID, userIDs)
}

// FetchMultiUserComparisonData is GetMultiUserComparisonData with per-user
// failures reported.
func (s *AnnotationService) FetchMultiUserComparisonData(ctx context.Context, projectID, documentID string, userIDs []string) (models.MultiUserAnnotationMap, error) {
	return s.repo.FetchMultiUserComparisonData(ctx, projectID, documentID, userIDs)
}
