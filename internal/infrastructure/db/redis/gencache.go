package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

const cacheTTL = time.Hour

// GenerationCache stores generator results keyed by the effective prompt,
// backed by Redis. Identical chained prompts (retried submissions after a
// turn conflict, repeated demo prompts) skip the generator entirely.
// Key format: gen:<sha256(prompt)>
type GenerationCache struct {
	client *redis.Client
}

// NewGenerationCache creates a GenerationCache wrapping the given Redis client.
func NewGenerationCache(client *redis.Client) *GenerationCache {
	return &GenerationCache{client: client}
}

// Lookup returns the cached result for a prompt, reporting a miss when none
// is stored.
func (c *GenerationCache) Lookup(ctx context.Context, prompt string) (*ports.GenerationResult, bool, error) {
	raw, err := c.client.Get(ctx, c.key(prompt)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("generation cache get: %w", err)
	}

	var result ports.GenerationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false, fmt.Errorf("generation cache decode: %w", err)
	}
	return &result, true, nil
}

// Store records a generator result for the prompt (expires after cacheTTL).
func (c *GenerationCache) Store(ctx context.Context, prompt string, result *ports.GenerationResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("generation cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(prompt), raw, cacheTTL).Err()
}

func (c *GenerationCache) key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "gen:" + hex.EncodeToString(sum[:])
}
