package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/objectledger/custodian/internal/adapter"
)

// Config holds token-bucket settings for outbound ledger RPC traffic
type Config struct {
	RequestsPerSecond float64 // Sustained request rate, 0 disables limiting
	Burst             int     // Max requests admitted at once
}

// limitedHTTPClient throttles an HTTP client with a local token bucket.
// The node already answers 429 on overload; limiting locally keeps the
// retry loops in the underlying client from amplifying the pressure.
type limitedHTTPClient struct {
	inner   adapter.HTTPClient
	limiter *rate.Limiter
}

// WrapHTTPClient applies a request rate limit to an HTTP client. The
// client is returned unchanged when no rate is configured.
func WrapHTTPClient(inner adapter.HTTPClient, cfg Config) adapter.HTTPClient {
	if cfg.RequestsPerSecond <= 0 {
		return inner
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &limitedHTTPClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

func (c *limitedHTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return c.inner.Get(ctx, url, result)
}

func (c *limitedHTTPClient) PostJSON(ctx context.Context, url string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return c.inner.PostJSON(ctx, url, body)
}
