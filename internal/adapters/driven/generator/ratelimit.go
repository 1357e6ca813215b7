package generator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure RateLimited implements the interface.
var _ driven.AnswerGenerator = (*RateLimited)(nil)

// RateLimited spaces calls to a generator evenly over time.
// It uses a token bucket with a burst of one.
type RateLimited struct {
	next    driven.AnswerGenerator
	limiter *rate.Limiter
}

// NewRateLimited allows at most perMinute calls per minute through to next.
// A non-positive rate disables limiting.
func NewRateLimited(next driven.AnswerGenerator, perMinute int) *RateLimited {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Generate waits for a token, then delegates.
func (r *RateLimited) Generate(ctx context.Context, req driven.GenerateRequest) (string, error) {
	if !r.limiter.Allow() {
		logger.Debug("Generator rate limit reached, waiting")
		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for generator: %w", err)
		}
	}
	return r.next.Generate(ctx, req)
}
