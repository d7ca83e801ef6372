package external

import (
	"context"
	"io"
	"time"

	"github.com/sony/gobreaker"

	"github.com/oncorisk-client/internal/domain"
)

// ResilientExtractor wraps a DocumentExtractor with a circuit breaker. The
// extraction provider runs heavyweight OCR and degrades badly under repeated
// failures, so after a run of errors the breaker opens and uploads fail fast
// until the provider recovers. The wrapped call itself stays single-attempt.
type ResilientExtractor struct {
	inner   domain.DocumentExtractor
	breaker *gobreaker.CircuitBreaker
}

// NewResilientExtractor wraps inner with a breaker configured from cfg.
func NewResilientExtractor(inner domain.DocumentExtractor, cfg domain.ExtractionConfig) *ResilientExtractor {
	maxRequests := cfg.BreakerMaxRequests
	if maxRequests == 0 {
		maxRequests = 3
	}
	interval := cfg.BreakerInterval
	if interval == 0 {
		interval = 30 * time.Second
	}
	timeout := cfg.BreakerTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "extraction",
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &ResilientExtractor{inner: inner, breaker: breaker}
}

// Extract delegates to the wrapped extractor through the breaker.
func (r *ResilientExtractor) Extract(ctx context.Context, condition domain.ConditionType, filename string, file io.Reader) (domain.ExtractionResult, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.Extract(ctx, condition, filename, file)
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.ExtractionResult), nil
}
