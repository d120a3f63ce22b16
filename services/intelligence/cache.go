package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

const aiResponsePrefix = "ai:resp:"

// ResponseCache keeps cleaned model output keyed by prompt hash so repeated
// identical prompts within the TTL skip the model call.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return aiResponsePrefix + hex.EncodeToString(sum[:])
}

func (c *ResponseCache) Get(ctx context.Context, prompt string) (string, bool) {
	data, err := c.client.Get(ctx, cacheKey(prompt)).Result()
	if err != nil {
		return "", false
	}
	return data, true
}

func (c *ResponseCache) Set(ctx context.Context, prompt, cleaned string) error {
	return c.client.Set(ctx, cacheKey(prompt), cleaned, c.ttl).Err()
}
