package slot

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"metalmarket-storefront/internal/domain"
)

const keyPrefix = "slot:"

type redisRepo struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) Repository {
	return &redisRepo{client: client}
}

func slotKey(ownerID, name string) string {
	return keyPrefix + ownerID + ":" + name
}

func (r *redisRepo) Read(ctx context.Context, ownerID, name string) ([]byte, error) {
	payload, err := r.client.Get(ctx, slotKey(ownerID, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (r *redisRepo) Write(ctx context.Context, ownerID, name string, payload []byte) error {
	return r.client.Set(ctx, slotKey(ownerID, name), payload, 0).Err()
}

func (r *redisRepo) Delete(ctx context.Context, ownerID, name string) error {
	return r.client.Del(ctx, slotKey(ownerID, name)).Err()
}
