// Package cache provides the response cache that fronts the upstream
// catalog. Entries are keyed by the fully-qualified request URL and are
// valid for a fixed TTL.
package cache

import (
	"context"
	"time"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

// DefaultTTL is how long a cached response stays valid.
const DefaultTTL = 15 * time.Minute

// Cache stores mapped search results keyed by request URL. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get returns the payload for key if a live entry exists.
	Get(ctx context.Context, key string) ([]dal.Car, bool)
	// Put stores payload under key, replacing any previous entry.
	Put(ctx context.Context, key string, payload []dal.Car)
	// Scan visits every live entry until fn returns false.
	Scan(ctx context.Context, fn func(key string, payload []dal.Car) bool)
}
