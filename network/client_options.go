package network

import "net/http"

type clientOption func(Client) Client

// WithHTTPClient replaces the underlying HTTP client, for callers that need
// their own transport, such as tests running against httptest servers.
func WithHTTPClient(httpClient *http.Client) clientOption {
	return func(c Client) Client {
		c.client = httpClient
		return c
	}
}
