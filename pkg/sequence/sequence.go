// Package sequence defines order-number sources. A bare in-process counter
// is not safe across multiple server instances or restarts, so callers pick
// either the collision-resistant random source or the Redis-backed sequence.
package sequence

import "context"

// Source issues order numbers.
type Source interface {
	Next(ctx context.Context) (string, error)
}
