package llm

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/career-advisor/internal/types"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Reply outcomes reported to the outcome hook
const (
	OutcomeOK       = "ok"
	OutcomeRetry    = "retry"
	OutcomeFallback = "fallback"
)

// ResilientGenerator wraps a primary generator with a per-attempt timeout,
// retries with exponential backoff on transient errors, and a fallback used
// when every attempt failed. GenerateReply never returns an error unless the
// fallback itself fails.
type ResilientGenerator struct {
	primary  ReplyGenerator
	fallback ReplyGenerator
	timeout  time.Duration
	retry    RetryConfig
	logger   *zap.Logger

	// OnOutcome, when set, is called once per attempt outcome
	OnOutcome func(outcome string)
}

// NewResilientGenerator creates a ResilientGenerator. A nil fallback means FallbackGenerator.
func NewResilientGenerator(primary, fallback ReplyGenerator, config *Config, logger *zap.Logger) *ResilientGenerator {
	if config == nil {
		config = DefaultConfig()
	}
	if fallback == nil {
		fallback = FallbackGenerator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResilientGenerator{
		primary:  primary,
		fallback: fallback,
		timeout:  config.Timeout,
		retry:    config.Retry,
		logger:   logger,
	}
}

// GenerateReply implements ReplyGenerator
func (g *ResilientGenerator) GenerateReply(ctx context.Context, history []types.Message, profile *types.PartialProfile) (string, error) {
	reply, err := retryDo(ctx, g.retry, func(attempt int) (string, error) {
		if attempt > 0 {
			g.report(OutcomeRetry)
		}
		return g.attempt(ctx, history, profile)
	})
	if err == nil {
		g.report(OutcomeOK)
		return reply, nil
	}

	g.logger.Warn("reply generation failed, using fallback", zap.Error(err))
	g.report(OutcomeFallback)
	// the caller's context may already be done; the fallback is local and must still answer
	return g.fallback.GenerateReply(context.WithoutCancel(ctx), history, profile)
}

func (g *ResilientGenerator) attempt(ctx context.Context, history []types.Message, profile *types.PartialProfile) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.primary.GenerateReply(ctx, history, profile)
}

func (g *ResilientGenerator) report(outcome string) {
	if g.OnOutcome != nil {
		g.OnOutcome(outcome)
	}
}

// retryDo calls fn up to MaxRetries+1 times with exponential backoff between
// attempts. It stops early on non-retryable errors and on context cancellation.
func retryDo[T any](ctx context.Context, rc RetryConfig, fn func(attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn(attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < rc.MaxRetries {
			select {
			case <-time.After(backoff(rc, attempt)):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}

func backoff(rc RetryConfig, attempt int) time.Duration {
	wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt)))
	if rc.MaxWait > 0 && wait > rc.MaxWait {
		wait = rc.MaxWait
	}
	return wait
}

// isRetryable returns true for transient errors worth retrying
func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return isRetryableStatus(apiErr.Code)
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Internal:
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// isRetryableStatus returns true for HTTP status codes worth retrying
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
