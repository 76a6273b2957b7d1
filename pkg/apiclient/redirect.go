package apiclient

import (
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/browser"
)

// AuthRedirector sends the user to the login entry point after the backend
// rejects a request with 401. It runs as a side effect of the request,
// independent of how the caller handles the returned error. A Client calls it
// for the first 401 only, until Client.ResetRedirect.
type AuthRedirector interface {
	Redirect(loginURL string) error
}

// RedirectFunc adapts a function to AuthRedirector.
type RedirectFunc func(loginURL string) error

// Redirect calls f(loginURL).
func (f RedirectFunc) Redirect(loginURL string) error {
	return f(loginURL)
}

// BrowserRedirector opens the login page in the user's default browser.
type BrowserRedirector struct {
	Logger hclog.Logger
}

// Redirect opens loginURL in the browser.
func (r *BrowserRedirector) Redirect(loginURL string) error {
	if r.Logger != nil {
		r.Logger.Warn("authentication required, opening login page", "url", loginURL)
	}
	return browser.OpenURL(loginURL)
}

// LogRedirector only reports where the user has to log in. It is used when
// there is no browser to navigate, e.g. in headless runs.
type LogRedirector struct {
	Logger hclog.Logger
}

// Redirect logs loginURL.
func (r *LogRedirector) Redirect(loginURL string) error {
	if r.Logger != nil {
		r.Logger.Error("authentication required, log in and retry", "url", loginURL)
	}
	return nil
}
