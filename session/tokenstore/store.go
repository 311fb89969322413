// Package tokenstore persists the access/refresh token pair of each browser
// session. The pair is the only durable client-side state the portal keeps.
package tokenstore

import "context"

// Pair holds the two credentials of a session. An empty Access means the
// session is unauthenticated.
type Pair struct {
	Access  string
	Refresh string
}

// Store reads and writes token pairs keyed by browser-session ID.
// SetPair must be atomic with respect to Pair: a reader never observes an
// access token from one pair combined with a refresh token from another.
type Store interface {
	Pair(ctx context.Context, sessionID string) (Pair, error)
	SetPair(ctx context.Context, sessionID string, pair Pair) error
	SetAccess(ctx context.Context, sessionID, access string) error
	Clear(ctx context.Context, sessionID string) error
}
