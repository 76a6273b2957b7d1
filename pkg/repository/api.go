package repository

import (
	"context"
	"net/url"

	"github.com/annotation-forge/annotator/pkg/apiclient"
)

// API is the subset of the HTTP client the repositories call.
// *apiclient.Client implements it.
type API interface {
	Get(ctx context.Context, path string, config ...apiclient.RequestConfig) (*apiclient.Response, error)
	Post(ctx context.Context, path string, body any, config ...apiclient.RequestConfig) (*apiclient.Response, error)
	Patch(ctx context.Context, path string, body any, config ...apiclient.RequestConfig) (*apiclient.Response, error)
}

var _ API = (*apiclient.Client)(nil)

// projectPath builds "projects/{projectID}/{elem...}" with every element
// path-escaped.
func projectPath(projectID string, elem ...string) string {
	p := "projects/" + url.PathEscape(projectID)
	for _, e := range elem {
		p += "/" + url.PathEscape(e)
	}
	return p
}
