// Package delivery defines the contract every transport entrypoint
// (HTTP server, future workers) satisfies so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport. Serve blocks until the transport
// stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
