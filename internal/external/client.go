// Package external is the boundary between weatherdesk and the weather
// provider. All outbound HTTP calls go through BaseClient, which adds
// circuit breaking, request-id propagation and error mapping.
package external

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"weatherdesk/internal/types"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit breaker wrapped by BaseClient.
type BreakerSettings struct {
	// Consecutive failures that open the circuit.
	MaxFailures uint32
	// How long the circuit stays open before a half-open probe.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings returns the settings used for the provider.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}
}

// BaseClient wraps an *http.Client and a circuit breaker. Requests are sent
// exactly once; there are no retries.
type BaseClient struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*http.Response]
	userAgent string
}

// NewBaseClient creates a BaseClient. State transitions of the breaker are
// logged with logger.
func NewBaseClient(
	httpClient *http.Client,
	breakerName string,
	settings BreakerSettings,
	userAgent string,
	logger *slog.Logger,
) *BaseClient {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &BaseClient{
		client:    httpClient,
		breaker:   cb,
		userAgent: userAgent,
	}
}

// State reports the breaker state.
func (c *BaseClient) State() gobreaker.State {
	return c.breaker.State()
}

// Do executes req once through the circuit breaker.
//
// Responses with status below 500 other than 429 are returned as-is and the
// caller must close the body. 5xx, 429, transport failures and an open
// circuit are returned as a *types.AppError with the body already closed.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	if id := types.GetRequestID(req.Context()); id != "" {
		req.Header.Set("X-Request-Id", id)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if r.StatusCode >= 500 || r.StatusCode == http.StatusTooManyRequests {
			return r, fmt.Errorf("upstream returned %d", r.StatusCode)
		}
		return r, nil
	})
	if err == nil {
		return resp, nil
	}

	if resp != nil {
		resp.Body.Close()
	}
	return nil, mapError(resp, err)
}

// mapError translates transport-level failures into AppErrors.
func mapError(resp *http.Response, err error) *types.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.NewAppError(
			types.ErrCodeUpstreamCircuitOpen,
			"circuit breaker is open; upstream service unavailable",
			err,
		)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return types.NewAppError(
				types.ErrCodeUpstreamRateLimited,
				"upstream rate limit exceeded",
				err,
			)
		case resp.StatusCode >= 500:
			return types.NewAppError(
				types.ErrCodeUpstreamUnavailable,
				fmt.Sprintf("upstream returned %d", resp.StatusCode),
				err,
			)
		}
	}

	// Network error, DNS failure, timeout, cancelled context.
	return types.NewAppError(
		types.ErrCodeUpstreamUnavailable,
		"upstream request failed",
		err,
	)
}
