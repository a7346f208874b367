package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/security"
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/cache"
)

const (
	userKeyPrefix  = "kernel:user:"
	defaultUserTTL = 1 * time.Hour
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// userCache implements cache.UserCache.
type userCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewUserCache creates a new UserCache. A zero ttl uses one hour.
func NewUserCache(client redis.UniversalClient, ttl time.Duration) cache.UserCache {
	if ttl == 0 {
		ttl = defaultUserTTL
	}
	return &userCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *userCache) Get(ctx context.Context, userID types.ID) (*model.User, error) {
	data, err := c.client.Get(ctx, userKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return cached.toModel()
}

func (c *userCache) Set(ctx context.Context, user *model.User, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(newCachedUser(user))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := c.client.Set(ctx, userKey(user.ID()), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set user in cache: %w", err)
	}

	return nil
}

func (c *userCache) Delete(ctx context.Context, userID types.ID) error {
	if err := c.client.Del(ctx, userKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	return nil
}

// Key helpers

func userKey(id types.ID) string {
	return userKeyPrefix + id.String()
}

// Cached user structure for JSON serialization

type cachedUser struct {
	ID        string  `json:"id"`
	DID       string  `json:"did"`
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	Status    string  `json:"status"`
	Version   int64   `json:"version"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

func newCachedUser(u *model.User) cachedUser {
	cached := cachedUser{
		ID:        u.ID().String(),
		DID:       u.DID().String(),
		Status:    u.Status().String(),
		Version:   u.Version(),
		CreatedAt: u.CreatedAt().Time().UnixMilli(),
		UpdatedAt: u.UpdatedAt().Time().UnixMilli(),
	}

	if u.Email().IsPresent() {
		email := u.Email().MustGet().String()
		cached.Email = &email
	}

	if u.Name().IsPresent() {
		name := u.Name().MustGet()
		cached.Name = &name
	}

	return cached
}

func (c cachedUser) toModel() (*model.User, error) {
	id, err := types.ParseID(c.ID)
	if err != nil {
		return nil, err
	}

	did, err := security.ParseDID(c.DID)
	if err != nil {
		return nil, err
	}

	email := types.None[types.Email]()
	if c.Email != nil {
		e, err := types.NewEmail(*c.Email)
		if err != nil {
			return nil, fmt.Errorf("invalid cached email: %w", err)
		}
		email = types.Some(e)
	}

	name := types.None[string]()
	if c.Name != nil {
		name = types.Some(*c.Name)
	}

	return model.ReconstructUser(
		id,
		did,
		email,
		name,
		model.UserStatus(c.Status),
		c.Version,
		types.FromTime(time.UnixMilli(c.CreatedAt)),
		types.FromTime(time.UnixMilli(c.UpdatedAt)),
	), nil
}
