// Package apiclient provides the shared HTTP client used by every repository
// that talks to the annotation backend.
//
// # Overview
//
// The client is the single point where outbound requests are built. Base URL,
// cookie credentials, CSRF header and query parameter serialization are fixed
// configuration; callers only supply a path, an optional body and optional
// per-request options.
//
// # Configuration Example
//
//	api {
//	  base_url   = "https://annotate.example.com/v1"
//	  login_url  = "/login"
//	  timeout    = "30s"
//	  tls_verify = true
//	}
//
// # Error Signals
//
// Every non-2xx response is returned as an *HTTPError carrying the status code
// and payload. Two statuses have cross-cutting meaning:
//
//   - 401: the configured AuthRedirector sends the user to the login page.
//     This happens before the error reaches the caller and regardless of how
//     the caller handles it.
//   - 503: the error propagates unchanged. The client performs no UI action;
//     an outage listener registered with Use observes it independently.
//
// # Query Parameters
//
// Array-valued parameters are serialized as repeated pairs:
//
//	Params{"ids": []int{1, 2}}  ->  ids=1&ids=2
package apiclient
