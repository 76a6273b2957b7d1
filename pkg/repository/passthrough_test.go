package repository

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annotation-forge/annotator/pkg/apiclient"
	"github.com/annotation-forge/annotator/pkg/models"
)

func TestDiscrepancyRepository(t *testing.T) {
	client, transport := newMockedClient(t)
	repo := NewDiscrepancyRepository(client)
	ctx := context.Background()

	transport.RegisterResponder("GET", testBaseURL+"/projects/3/discrepacies",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "dataset=a&dataset=b", req.URL.RawQuery)
			return httpmock.NewStringResponse(http.StatusOK, `{"discrepancies": []}`), nil
		})
	transport.RegisterResponder("POST", testBaseURL+"/projects/3/discrepancies/postdiscrepancies",
		func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			assert.JSONEq(t, `{"questions": ["q1"]}`, string(body))
			return httpmock.NewStringResponse(http.StatusCreated, `{"saved": 1}`), nil
		})
	transport.RegisterResponder("GET", testBaseURL+"/projects/3/discrepancies",
		httpmock.NewStringResponder(http.StatusOK, `[{"id": 1, "question": "Is it spam?", "status": "open", "data": {"a": 1}}]`))
	transport.RegisterResponder("PATCH", `=~^https://annotate\.example\.com/v1/projects/3/discrepancies/.+/update-status`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "/v1/projects/3/discrepancies/Is%20it%20spam%3F/update-status", req.URL.EscapedPath())
			return httpmock.NewStringResponse(http.StatusOK, `{"id": 1, "question": "Is it spam?", "status": "resolved"}`), nil
		})

	listed, err := repo.List(ctx, "3", apiclient.Params{"dataset": []string{"a", "b"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"discrepancies": []}`, listed.String())

	saved, err := repo.PostDiscrepancies(ctx, "3", map[string][]string{"questions": {"q1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"saved": 1}`, saved.String())

	stored, err := repo.ListDB(ctx, "3")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Is it spam?", stored[0].Question)
	assert.JSONEq(t, `{"a": 1}`, stored[0].Data.String())

	updated, err := repo.UpdateStatus(ctx, "3", "Is it spam?")
	require.NoError(t, err)
	assert.Equal(t, "resolved", updated.Status)
}

func TestDiscrepancyRepository_ErrorsPropagate(t *testing.T) {
	client, transport := newMockedClient(t)
	transport.RegisterResponder("GET", testBaseURL+"/projects/3/discrepancies",
		httpmock.NewStringResponder(http.StatusForbidden, `{"detail": "not a member"}`))

	_, err := NewDiscrepancyRepository(client).ListDB(context.Background(), "3")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))
	assert.Contains(t, err.Error(), "not a member")
}

func TestMetricsRepository(t *testing.T) {
	client, transport := newMockedClient(t)
	repo := NewMetricsRepository(client)
	ctx := context.Background()

	distribution := `{"alice": {"positive": 2, "negative": 1}}`
	for _, name := range []string{"category-distribution", "span-distribution", "relation-distribution"} {
		transport.RegisterResponder("GET", testBaseURL+"/projects/4/metrics/"+name,
			httpmock.NewStringResponder(http.StatusOK, distribution))
	}
	transport.RegisterResponder("GET", testBaseURL+"/projects/4/metrics/member-progress",
		httpmock.NewStringResponder(http.StatusOK, `{"total": 10, "progress": [{"user": "alice", "done": 4}]}`))
	transport.RegisterResponder("GET", testBaseURL+"/projects/4/metrics/progress",
		httpmock.NewStringResponder(http.StatusOK, `{"total": 10, "remaining": 6, "complete": 4}`))
	transport.RegisterResponder("GET", testBaseURL+"/projects/4/metrics/dataset",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "version_id=3", req.URL.RawQuery)
			return httpmock.NewStringResponse(http.StatusOK, `{"documents": 12}`), nil
		})

	expected := models.Distribution{"alice": {"positive": 2, "negative": 1}}
	for _, fetch := range []func(context.Context, string) (models.Distribution, error){
		repo.CategoryDistribution,
		repo.SpanDistribution,
		repo.RelationDistribution,
	} {
		d, err := fetch(ctx, "4")
		require.NoError(t, err)
		assert.Equal(t, expected, d)
	}

	members, err := repo.MemberProgress(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, 10, members.Total)
	assert.Equal(t, []models.MemberProgress{{User: "alice", Done: 4}}, members.Progress)

	mine, err := repo.MyProgress(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, models.MyProgress{Total: 10, Remaining: 6, Complete: 4}, *mine)

	stats, err := repo.DatasetStatistics(ctx, "4", apiclient.Params{"version_id": 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"documents": 12}`, stats.String())
}

func TestMetricsRepository_DecodeError(t *testing.T) {
	client, transport := newMockedClient(t)
	transport.RegisterResponder("GET", testBaseURL+"/projects/4/metrics/progress",
		httpmock.NewStringResponder(http.StatusOK, `[1, 2]`))

	_, err := NewMetricsRepository(client).MyProgress(context.Background(), "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestDiscussionThreadRepository(t *testing.T) {
	client, transport := newMockedClient(t)
	repo := NewDiscussionThreadRepository(client)
	ctx := context.Background()

	var queries []string
	transport.RegisterResponder("GET", testBaseURL+"/projects/5/discussion-threads",
		func(req *http.Request) (*http.Response, error) {
			queries = append(queries, req.URL.RawQuery)
			return httpmock.NewStringResponse(http.StatusOK,
				`[{"id": 1, "title": "Label drift", "project": 5, "closed": false, "created_at": "2026-03-01T10:00:00Z"}]`), nil
		})
	transport.RegisterResponder("POST", testBaseURL+"/projects/5/discussion-threads",
		func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			assert.JSONEq(t, `{"title": "Spam or ham"}`, string(body))
			return httpmock.NewStringResponse(http.StatusCreated,
				`{"id": 2, "title": "Spam or ham", "project": 5, "version": 3, "closed": false, "created_at": "2026-03-02T10:00:00Z"}`), nil
		})
	transport.RegisterResponder("GET", testBaseURL+"/projects/5/discussion-threads/2/messages",
		httpmock.NewStringResponder(http.StatusOK, `[{"id": 9, "thread": 2, "message": "I think spam", "created_at": "2026-03-02T11:00:00Z"}]`))
	transport.RegisterResponder("POST", testBaseURL+"/projects/5/discussion-threads/2/messages",
		func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			assert.JSONEq(t, `{"message": "agreed"}`, string(body))
			return httpmock.NewStringResponse(http.StatusCreated, `{"id": 10, "thread": 2, "message": "agreed", "created_at": "2026-03-02T12:00:00Z"}`), nil
		})

	threads, err := repo.List(ctx, "5", "")
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "Label drift", threads[0].Title)
	assert.Nil(t, threads[0].Version)

	_, err = repo.List(ctx, "5", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "version_id=3"}, queries)

	thread, err := repo.Create(ctx, "5", "Spam or ham")
	require.NoError(t, err)
	assert.Equal(t, int64(2), thread.ID)
	require.NotNil(t, thread.Version)
	assert.Equal(t, int64(3), *thread.Version)

	messages, err := repo.ListMessages(ctx, "5", 2)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "I think spam", messages[0].Message)

	message, err := repo.PostMessage(ctx, "5", 2, "agreed")
	require.NoError(t, err)
	assert.Equal(t, int64(10), message.ID)
}

func TestDiscrepancyHistoryRepository(t *testing.T) {
	client, transport := newMockedClient(t)
	repo := NewDiscrepancyHistoryRepository(client)
	ctx := context.Background()

	var bodies []string
	transport.RegisterResponder("POST", testBaseURL+"/projects/6/discrepancy-history",
		func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			bodies = append(bodies, string(body))
			return httpmock.NewStringResponse(http.StatusAccepted, `{"task_id": "c0ffee"}`), nil
		})
	transport.RegisterResponder("GET", testBaseURL+"/projects/6/discrepancy-history-data",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "taskId=c0ffee", req.URL.RawQuery)
			return httpmock.NewStringResponse(http.StatusOK, `[{"question": "q1"}, {"question": "q2"}]`), nil
		})

	taskID, err := repo.Prepare(ctx, "6", "gold")
	require.NoError(t, err)
	assert.Equal(t, "c0ffee", taskID)

	_, err = repo.Prepare(ctx, "6", "")
	require.NoError(t, err)
	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"datasetName": "gold"}`, bodies[0])
	assert.JSONEq(t, `{"datasetName": null}`, bodies[1])

	rows, err := repo.Fetch(ctx, "6", taskID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.JSONEq(t, `{"question": "q2"}`, rows[1].String())
}

func TestDiscrepancyHistoryRepository_MissingTaskID(t *testing.T) {
	client, transport := newMockedClient(t)
	transport.RegisterResponder("POST", testBaseURL+"/projects/6/discrepancy-history",
		httpmock.NewStringResponder(http.StatusAccepted, `{}`))

	_, err := NewDiscrepancyHistoryRepository(client).Prepare(context.Background(), "6", "gold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task_id")
}
