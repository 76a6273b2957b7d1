package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/models"
)

// DiscussionThreadRepository manages project discussion threads and their
// messages.
type DiscussionThreadRepository struct {
	api API
}

// NewDiscussionThreadRepository creates a repository backed by api.
func NewDiscussionThreadRepository(api API) *DiscussionThreadRepository {
	return &DiscussionThreadRepository{api: api}
}

// List returns the project's threads. An empty versionID lists threads of
// every version.
func (r *DiscussionThreadRepository) List(ctx context.Context, projectID, versionID string) ([]models.DiscussionThread, error) {
	var cfg apiclient.RequestConfig
	if versionID != "" {
		cfg.Params = apiclient.Params{"version_id": versionID}
	}

	resp, err := r.api.Get(ctx, projectPath(projectID, "discussion-threads"), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to list discussion threads: %w", err)
	}

	threads := []models.DiscussionThread{}
	if err := resp.Decode(&threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// Create opens a new thread.
func (r *DiscussionThreadRepository) Create(ctx context.Context, projectID, title string) (*models.DiscussionThread, error) {
	resp, err := r.api.Post(ctx, projectPath(projectID, "discussion-threads"), map[string]string{"title": title})
	if err != nil {
		return nil, fmt.Errorf("failed to create discussion thread: %w", err)
	}

	var thread models.DiscussionThread
	if err := resp.Decode(&thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// ListMessages returns the messages of a thread.
func (r *DiscussionThreadRepository) ListMessages(ctx context.Context, projectID string, threadID int64) ([]models.DiscussionMessage, error) {
	resp, err := r.api.Get(ctx, projectPath(projectID, "discussion-threads", strconv.FormatInt(threadID, 10), "messages"))
	if err != nil {
		return nil, fmt.Errorf("failed to list discussion messages: %w", err)
	}

	messages := []models.DiscussionMessage{}
	if err := resp.Decode(&messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// PostMessage appends a message to a thread.
func (r *DiscussionThreadRepository) PostMessage(ctx context.Context, projectID string, threadID int64, message string) (*models.DiscussionMessage, error) {
	path := projectPath(projectID, "discussion-threads", strconv.FormatInt(threadID, 10), "messages")
	resp, err := r.api.Post(ctx, path, map[string]string{"message": message})
	if err != nil {
		return nil, fmt.Errorf("failed to post discussion message: %w", err)
	}

	var m models.DiscussionMessage
	if err := resp.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
