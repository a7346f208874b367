package cache

import (
	"context"
	"time"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-kernel/internal/domain/model"
)

// UserCache defines the interface for user caching.
// Used to keep GetUser reads off the database.
type UserCache interface {
	// Get retrieves a user from the cache.
	// Returns nil if not found (cache miss).
	Get(ctx context.Context, userID types.ID) (*model.User, error)

	// Set stores a user in the cache with TTL. A zero TTL uses the default.
	Set(ctx context.Context, user *model.User, ttl time.Duration) error

	// Delete removes a user from the cache.
	Delete(ctx context.Context, userID types.ID) error
}
