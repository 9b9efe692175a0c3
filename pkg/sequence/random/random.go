// Package random implements a collision-resistant sequence.Source that needs
// no external state: a millisecond timestamp plus a random suffix.
package random

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source issues numbers shaped like PREFIX-1693526400000-9f3a1c2e.
type Source struct {
	prefix string
	now    func() time.Time
}

// New creates a random source with the given order-number prefix.
func New(prefix string) *Source {
	return &Source{prefix: prefix, now: time.Now}
}

// Next returns a fresh order number. The random suffix keeps concurrent
// instances from colliding within the same millisecond.
func (s *Source) Next(ctx context.Context) (string, error) {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", s.prefix, s.now().UnixMilli(), suffix), nil
}
