package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tastebase/tastebase/internal/model"
)

// Cache key prefixes and TTLs.
const (
	recipeKeyPrefix   = "recipe:"
	negCacheKeySuffix = ":neg"

	// DefaultRecipeTTL is the TTL for cached recipe detail.
	DefaultRecipeTTL = 10 * time.Minute

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = 1 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetRecipeDetail retrieves a cached recipe detail by id.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetRecipeDetail(ctx context.Context, id string) (*model.RecipeDetail, error) {
	key := recipeKeyPrefix + id

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var detail model.RecipeDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode cached recipe: %w", err)
	}

	return &detail, nil
}

// SetRecipeDetail stores a recipe detail in cache.
func (c *Cache) SetRecipeDetail(ctx context.Context, detail *model.RecipeDetail) error {
	key := recipeKeyPrefix + detail.ID

	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode recipe for cache: %w", err)
	}

	if err := c.client.SetEx(ctx, key, raw, DefaultRecipeTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache recipe: %w", err)
	}

	// Remove negative cache if exists
	c.client.Del(ctx, key+negCacheKeySuffix)

	return nil
}

// InvalidateRecipe removes a recipe from cache.
// Called on recipe update, recipe delete and comment creation.
func (c *Cache) InvalidateRecipe(ctx context.Context, id string) error {
	key := recipeKeyPrefix + id

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate recipe cache: %w", err)
	}

	return nil
}

// IsNegativelyCached checks if a recipe id is in negative cache.
func (c *Cache) IsNegativelyCached(ctx context.Context, id string) (bool, error) {
	key := recipeKeyPrefix + id + negCacheKeySuffix

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check negative cache: %w", err)
	}

	return exists > 0, nil
}

// SetNegativeCache marks a recipe id as not found.
func (c *Cache) SetNegativeCache(ctx context.Context, id string) error {
	key := recipeKeyPrefix + id + negCacheKeySuffix

	if err := c.client.SetEx(ctx, key, "", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}
