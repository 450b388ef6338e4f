package pinning

import "net/http"

// Option applies a configuration option to the PinataClient.
type Option func(*PinataClient)

// WithBaseURL overrides the pinning API host, mainly for tests.
func WithBaseURL(url string) Option {
	return func(p *PinataClient) {
		if url != "" {
			p.baseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *PinataClient) {
		if client != nil {
			p.client = client
		}
	}
}
