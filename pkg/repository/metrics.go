package repository

import (
	"context"
	"fmt"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/models"
)

// MetricsRepository reads project statistics.
type MetricsRepository struct {
	api API
}

// NewMetricsRepository creates a repository backed by api.
func NewMetricsRepository(api API) *MetricsRepository {
	return &MetricsRepository{api: api}
}

// CategoryDistribution returns per-member category label counts.
func (r *MetricsRepository) CategoryDistribution(ctx context.Context, projectID string) (models.Distribution, error) {
	return r.distribution(ctx, projectID, "category-distribution")
}

// SpanDistribution returns per-member span label counts.
func (r *MetricsRepository) SpanDistribution(ctx context.Context, projectID string) (models.Distribution, error) {
	return r.distribution(ctx, projectID, "span-distribution")
}

// RelationDistribution returns per-member relation label counts.
func (r *MetricsRepository) RelationDistribution(ctx context.Context, projectID string) (models.Distribution, error) {
	return r.distribution(ctx, projectID, "relation-distribution")
}

func (r *MetricsRepository) distribution(ctx context.Context, projectID, name string) (models.Distribution, error) {
	var d models.Distribution
	if err := r.get(ctx, projectID, name, nil, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// MemberProgress returns the progress of every project member.
func (r *MetricsRepository) MemberProgress(ctx context.Context, projectID string) (*models.Progress, error) {
	var p models.Progress
	if err := r.get(ctx, projectID, "member-progress", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MyProgress returns the progress of the authenticated user.
func (r *MetricsRepository) MyProgress(ctx context.Context, projectID string) (*models.MyProgress, error) {
	var p models.MyProgress
	if err := r.get(ctx, projectID, "progress", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DatasetStatistics returns dataset statistics, filtered by params
// (e.g. version_id).
func (r *MetricsRepository) DatasetStatistics(ctx context.Context, projectID string, params apiclient.Params) (models.JSON, error) {
	resp, err := r.api.Get(ctx, projectPath(projectID, "metrics", "dataset"), apiclient.RequestConfig{Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset statistics: %w", err)
	}
	return models.JSON(resp.Data), nil
}

func (r *MetricsRepository) get(ctx context.Context, projectID, name string, params apiclient.Params, v any) error {
	resp, err := r.api.Get(ctx, projectPath(projectID, "metrics", name), apiclient.RequestConfig{Params: params})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	return resp.Decode(v)
}
