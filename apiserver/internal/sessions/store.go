package sessions

import (
	"context"
	"time"
)

// RevocationsStore is an interface for components that remember which
// credentials have been surrendered through logout before their natural
// expiry. Only credential digests are stored, never raw tokens, and entries
// may be discarded once the credential they shadow has expired.
type RevocationsStore interface {
	// Revoke records the given credential digest as revoked until the given
	// expiry.
	Revoke(ctx context.Context, digest string, expires time.Time) error
	// IsRevoked indicates whether the given credential digest has been
	// revoked.
	IsRevoked(ctx context.Context, digest string) (bool, error)
}
