package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const defaultTTL = 5 * time.Minute

// ProductCache read-through快取, 只存get-by-id
// cache失敗不影響主流程, caller自行決定要不要fallback到db
type ProductCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, prefix string) *ProductCache {
	return &ProductCache{
		client: client,
		prefix: prefix,
		ttl:    defaultTTL,
	}
}

func GetRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func (c *ProductCache) key(id string) string {
	var builder strings.Builder
	builder.Grow(len(c.prefix) + len(":product:") + len(id))
	builder.WriteString(c.prefix)
	builder.WriteString(":product:")
	builder.WriteString(id)
	return builder.String()
}

func (c *ProductCache) Get(ctx context.Context, id string) (*model.Product, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return nil, fmt.Errorf("unmarshal cached product: %w", err)
	}
	return &product, nil
}

func (c *ProductCache) Set(ctx context.Context, product *model.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(product.ID.Hex()), raw, c.ttl).Err()
}

func (c *ProductCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
