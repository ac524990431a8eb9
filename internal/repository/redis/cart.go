package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
)

const keyPrefix = "cart:"

// CartRepository implements repository.CartRepository using Redis. Each cart
// is stored as a single JSON document under cart:<owner-key> with a sliding
// TTL refreshed on every write.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cart filed under the owner key.
func (r *CartRepository) Get(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	key := keyPrefix + owner.Key()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", owner.Key())
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// SaveIfVersion persists the cart only if the stored document is still at
// expectedVersion. A missing key counts as version 0. The check-and-set runs
// under WATCH so a concurrent writer aborts the transaction, in which case
// SaveIfVersion reports false and the caller retries on a fresh read.
func (r *CartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	key := keyPrefix + cart.Owner().Key()

	cart.Version = expectedVersion + 1

	data, err := json.Marshal(cart)
	if err != nil {
		return false, fmt.Errorf("marshal cart: %w", err)
	}

	txn := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
			if expectedVersion != 0 {
				return redis.TxFailedErr
			}
		case err != nil:
			return fmt.Errorf("redis get cart: %w", err)
		default:
			var current domain.Cart
			if err := json.Unmarshal(stored, &current); err != nil {
				return fmt.Errorf("unmarshal cart: %w", err)
			}
			if current.Version != expectedVersion {
				return redis.TxFailedErr
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	if err := r.client.Watch(ctx, txn, key); err != nil {
		if err == redis.TxFailedErr {
			return false, nil
		}
		return false, fmt.Errorf("redis save cart: %w", err)
	}

	return true, nil
}

// Delete removes the owner's cart.
func (r *CartRepository) Delete(ctx context.Context, owner domain.CartOwner) error {
	key := keyPrefix + owner.Key()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
