package repository

import (
	"net/http"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/annotation-forge/annotator/pkg/apiclient"
)

const testBaseURL = "https://annotate.example.com/v1"

// newMockedClient returns a client whose transport is a fresh httpmock
// transport, so tests do not share responders.
func newMockedClient(t *testing.T) (*apiclient.Client, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	client, err := apiclient.New(&apiclient.Config{BaseURL: testBaseURL},
		apiclient.WithLogger(hclog.NewNullLogger()),
		apiclient.WithHTTPClient(&http.Client{Transport: transport}),
		apiclient.WithRedirector(apiclient.RedirectFunc(func(string) error { return nil })),
	)
	require.NoError(t, err)
	return client, transport
}

func ptr[T any](v T) *T {
	return &v
}
