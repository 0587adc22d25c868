// internal/infrastructure/database/redis/guest_carts.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

const guestCartPrefix = "cart:guest:"

// GuestCarts keeps anonymous carts in Redis with a sliding TTL
type GuestCarts struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewGuestCarts creates a guest cart store
func NewGuestCarts(client *Client, ttl time.Duration) *GuestCarts {
	return &GuestCarts{rdb: client.Redis, ttl: ttl}
}

func guestCartKey(guestID string) string {
	return guestCartPrefix + guestID
}

// Find loads a guest cart and refreshes its expiry
func (g *GuestCarts) Find(ctx context.Context, guestID string) (*cart.Cart, error) {
	key := guestCartKey(guestID)

	raw, err := g.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to read guest cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}

	if g.ttl > 0 {
		g.rdb.Expire(ctx, key, g.ttl)
	}
	return &c, nil
}

// Save writes the cart under its guest id
func (g *GuestCarts) Save(ctx context.Context, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	if err := g.rdb.Set(ctx, guestCartKey(c.GuestID), raw, g.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write guest cart: %w", err)
	}
	return nil
}

// Delete drops the guest cart
func (g *GuestCarts) Delete(ctx context.Context, guestID string) error {
	n, err := g.rdb.Del(ctx, guestCartKey(guestID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete guest cart: %w", err)
	}
	if n == 0 {
		return apperror.ErrRecordNotFound
	}
	return nil
}
