package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/pkg/logger"
)

const cacheOpTimeout = 2 * time.Second

// redisProductCache caches whole product aggregates as JSON in Redis.
// Failures degrade to cache misses so Redis never takes reads down.
type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache creates a ProductCache backed by Redis
func NewRedisProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	return &redisProductCache{
		client: client,
		ttl:    ttl,
	}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *redisProductCache) GetProduct(id uint) (*model.Product, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, productCacheKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("Product cache read failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, false
	}

	var product model.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		logger.Warn("Discarding unreadable product cache entry", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		c.InvalidateProduct(id)
		return nil, false
	}

	return &product, true
}

func (c *redisProductCache) SetProduct(product *model.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		logger.Warn("Failed to serialize product for cache", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, productCacheKey(product.ID), raw, c.ttl).Err(); err != nil {
		logger.Warn("Product cache write failed", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	}
}

func (c *redisProductCache) InvalidateProduct(id uint) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.client.Del(ctx, productCacheKey(id)).Err(); err != nil {
		logger.Warn("Product cache invalidation failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
	}
}
