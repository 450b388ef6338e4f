package inspector

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the NodeInspector.
type Option func(*NodeInspector)

// WithHTTPClient sets a custom HTTP client for node calls.
func WithHTTPClient(client *http.Client) Option {
	return func(n *NodeInspector) {
		if client != nil {
			n.client = client
		}
	}
}

// WithTimeout bounds individual node calls.
func WithTimeout(timeout time.Duration) Option {
	return func(n *NodeInspector) {
		if timeout > 0 {
			n.client.Timeout = timeout
		}
	}
}

// WithENSResolver installs a reverse ENS lookup hook.
func WithENSResolver(resolver ENSResolver) Option {
	return func(n *NodeInspector) {
		n.resolveENS = resolver
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(n *NodeInspector) {
		if now != nil {
			n.now = now
		}
	}
}
