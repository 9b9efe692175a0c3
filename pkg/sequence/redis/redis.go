// Package redis implements a sequence.Source backed by a Redis counter, for
// deployments that want monotonic order numbers shared across instances.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const counterKey = "orderdesk:order-number"

// Source issues numbers from a shared INCR counter.
type Source struct {
	client *redis.Client
	prefix string
}

// New creates a Redis-backed source using the given client.
func New(client *redis.Client, prefix string) *Source {
	return &Source{client: client, prefix: prefix}
}

// Next increments the shared counter and returns PREFIX-<n>. Redis INCR is
// atomic, so concurrent instances never see the same value.
func (s *Source) Next(ctx context.Context) (string, error) {
	n, err := s.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return "", fmt.Errorf("incrementing order counter: %w", err)
	}
	return fmt.Sprintf("%s-%d", s.prefix, n), nil
}
