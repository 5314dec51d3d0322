package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ProfileChecker confirms that a public profile page exists.
type ProfileChecker interface {
	Exists(ctx context.Context, profileURL string) (bool, error)
}

// HTTPProfileChecker fetches profile pages through a shared outbound rate
// limit. Social sites answer bursts with 429, which would read as "missing".
type HTTPProfileChecker struct {
	client  *http.Client
	limiter *rate.Limiter
}

func NewHTTPProfileChecker(timeout time.Duration, requestsPerSecond float64, burst int) *HTTPProfileChecker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if burst <= 0 {
		burst = 1
	}
	return &HTTPProfileChecker{
		client: &http.Client{
			Timeout: timeout,
			// Logged-out visitors get redirected to a login wall; the 3xx
			// itself is the answer.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Exists reports true for any 2xx or 3xx answer.
func (c *HTTPProfileChecker) Exists(ctx context.Context, profileURL string) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; CollabExVerifier/1.0)")
	req.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	return resp.StatusCode >= 200 && resp.StatusCode < 400, nil
}
