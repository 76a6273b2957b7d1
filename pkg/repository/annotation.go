package repository

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/models"
)

// DefaultFallbackUsers are queried when neither compared user has any
// annotation on the document.
var DefaultFallbackUsers = [2]string{"1", "38"}

// AnnotationRepository reads per-user annotations of a document.
//
// The Get* methods never fail: transport errors, error statuses and
// unrecognized payloads all come back as empty sets and are only logged.
// The Fetch* methods report failures to callers that need to tell them
// apart from "no annotations".
type AnnotationRepository struct {
	api           API
	logger        hclog.Logger
	fallbackUsers []string
}

// AnnotationOption customizes an AnnotationRepository.
type AnnotationOption func(*AnnotationRepository)

// WithLogger sets the repository logger.
func WithLogger(logger hclog.Logger) AnnotationOption {
	return func(r *AnnotationRepository) {
		r.logger = logger
	}
}

// WithFallbackUsers replaces the fallback pair used by GetComparisonData.
// Passing two empty strings disables the fallback.
func WithFallbackUsers(user1, user2 string) AnnotationOption {
	return func(r *AnnotationRepository) {
		if user1 == "" && user2 == "" {
			r.fallbackUsers = nil
			return
		}
		r.fallbackUsers = []string{user1, user2}
	}
}

// NewAnnotationRepository creates a repository backed by api.
func NewAnnotationRepository(api API, opts ...AnnotationOption) *AnnotationRepository {
	r := &AnnotationRepository{
		api:           api,
		fallbackUsers: DefaultFallbackUsers[:],
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = hclog.NewNullLogger()
	}
	r.logger = r.logger.Named("annotations")
	return r
}

// FallbackUsers returns the configured fallback pair, or nil when disabled.
func (r *AnnotationRepository) FallbackUsers() []string {
	if r.fallbackUsers == nil {
		return nil
	}
	return []string{r.fallbackUsers[0], r.fallbackUsers[1]}
}

// FetchUserAnnotations returns one user's annotations on a document. A
// payload in an unrecognized layout yields an empty set and no error.
func (r *AnnotationRepository) FetchUserAnnotations(
	ctx context.Context, projectID, documentID, userID string,
) ([]models.AnnotationItem, error) {
	logger := r.logger.With("project", projectID, "document", documentID, "user", userID)
	logger.Debug("fetching annotations")

	resp, err := r.api.Get(ctx, projectPath(projectID, "annotations"), apiclient.RequestConfig{
		Params: apiclient.Params{
			"doc_id":  documentID,
			"user_id": userID,
		},
	})
	if err != nil {
		return []models.AnnotationItem{}, fmt.Errorf("failed to fetch annotations for user %s: %w", userID, err)
	}

	items, shape, err := decodeAnnotations(resp.Data)
	if err != nil {
		logger.Warn("malformed annotation list", "shape", shape.String(), "error", err)
		return []models.AnnotationItem{}, nil
	}
	if shape == shapeUnknown {
		logger.Warn("unexpected annotation response format", "payload", truncate(resp.Data, 256))
		return items, nil
	}

	logger.Debug("fetched annotations", "shape", shape.String(), "count", len(items))
	return items, nil
}

// GetUserAnnotations returns one user's annotations on a document, or an
// empty set on any failure.
func (r *AnnotationRepository) GetUserAnnotations(
	ctx context.Context, projectID, documentID, userID string,
) []models.AnnotationItem {
	items, err := r.FetchUserAnnotations(ctx, projectID, documentID, userID)
	if err != nil {
		r.logger.Error("error fetching annotations",
			"project", projectID, "document", documentID, "user", userID,
			"status", apiclient.StatusCode(err), "error", err)
		return []models.AnnotationItem{}
	}
	return items
}

// GetComparisonData fetches two users' annotations concurrently. When both
// sets are empty it retries once, concurrently, with the fallback pair and
// returns that result instead. Any orchestration failure yields an empty
// comparison.
func (r *AnnotationRepository) GetComparisonData(
	ctx context.Context, projectID, documentID, user1ID, user2ID string,
) models.ComparisonResult {
	result, err := r.fetchPair(ctx, projectID, documentID, user1ID, user2ID)
	if err != nil {
		r.logger.Error("error getting comparison data", "project", projectID, "document", documentID, "error", err)
		return models.EmptyComparison()
	}
	if !result.IsEmpty() || r.fallbackUsers == nil {
		return result
	}

	r.logger.Info("no annotations for requested users, trying fallback users",
		"project", projectID, "document", documentID,
		"users", []string{user1ID, user2ID}, "fallback", r.fallbackUsers)

	result, err = r.fetchPair(ctx, projectID, documentID, r.fallbackUsers[0], r.fallbackUsers[1])
	if err != nil {
		r.logger.Error("error getting fallback comparison data", "project", projectID, "document", documentID, "error", err)
		return models.EmptyComparison()
	}
	return result
}

func (r *AnnotationRepository) fetchPair(
	ctx context.Context, projectID, documentID, user1ID, user2ID string,
) (models.ComparisonResult, error) {
	var (
		g      errgroup.Group
		result models.ComparisonResult
	)

	g.Go(r.fetchInto(ctx, projectID, documentID, user1ID, &result.User1))
	g.Go(r.fetchInto(ctx, projectID, documentID, user2ID, &result.User2))

	if err := g.Wait(); err != nil {
		return models.EmptyComparison(), err
	}
	return result, nil
}

func (r *AnnotationRepository) fetchInto(
	ctx context.Context, projectID, documentID, userID string, dst *[]models.AnnotationItem,
) func() error {
	return func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic fetching annotations for user %s: %v", userID, p)
			}
		}()
		*dst = r.GetUserAnnotations(ctx, projectID, documentID, userID)
		return nil
	}
}

// GetMultiUserComparisonData fetches each user's annotations one after
// another, in the given order. Every requested user has an entry in the
// result, empty when the fetch failed. No fallback applies.
func (r *AnnotationRepository) GetMultiUserComparisonData(
	ctx context.Context, projectID, documentID string, userIDs []string,
) models.MultiUserAnnotationMap {
	results, err := r.FetchMultiUserComparisonData(ctx, projectID, documentID, userIDs)
	if err != nil {
		r.logger.Error("error fetching annotations for some users",
			"project", projectID, "document", documentID, "error", err)
	}
	return results
}

// FetchMultiUserComparisonData behaves like GetMultiUserComparisonData and
// also returns the per-user failures as a *multierror.Error.
func (r *AnnotationRepository) FetchMultiUserComparisonData(
	ctx context.Context, projectID, documentID string, userIDs []string,
) (models.MultiUserAnnotationMap, error) {
	results := make(models.MultiUserAnnotationMap, len(userIDs))
	var errs *multierror.Error

	for _, userID := range userIDs {
		items, err := r.FetchUserAnnotations(ctx, projectID, documentID, userID)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		results[userID] = items
	}

	return results, errs.ErrorOrNil()
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
