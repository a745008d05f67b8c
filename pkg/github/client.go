package github

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/gitport/gitport/pkg/logger"
	"github.com/google/go-github/v70/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub client with retry capabilities
type Client struct {
	inner *github.Client
	v4    *githubv4.Client
}

// NewClientByPAT creates a new GitHub client with the provided token
func NewClientByPAT(token string) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		inner: github.NewClient(tc),
		v4:    githubv4.NewClient(tc),
	}
}

// NewClientByApp creates a new GitHub client authenticating as a GitHub App
// installation
func NewClientByApp(appID, installationID int, privateKey string) *Client {
	itr, err := ghinstallation.New(http.DefaultTransport, int64(appID), int64(installationID), []byte(privateKey))
	if err != nil {
		logger.Fatal("failed to create gh client", "error", err)
	}
	return &Client{
		inner: github.NewClient(&http.Client{Transport: itr}),
		v4:    githubv4.NewClient(&http.Client{Transport: itr}),
	}
}

// GetInner returns the underlying GitHub client
func (client *Client) GetInner() *github.Client {
	return client.inner
}

// GetV4 returns the underlying GitHub GraphQL client
func (client *Client) GetV4() *githubv4.Client {
	return client.v4
}

// RetryableOperation retries a GitHub API operation with exponential backoff
func RetryableOperation(ctx context.Context, operation func() error) error {
	var err error
	maxRetries := 5
	backoffFactor := 2.0
	initialDelay := 1 * time.Second
	maxDelay := 60 * time.Second

	for attempt := 0; attempt < maxRetries; attempt++ {
		err = operation()
		if err == nil {
			return nil
		}

		if isRateLimitError(err) {
			return fmt.Errorf("rate limited: %w", err)
		} else if isRetryableError(err) {
			// Other retryable errors (network issues, 500s, etc.)
			delay := calculateBackoff(attempt, initialDelay, backoffFactor, maxDelay)
			logger.Info(fmt.Sprintf("Retryable error: %v. Retrying after %s (attempt %d/%d)", err, delay, attempt+1, maxRetries))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		} else {
			return err
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", maxRetries, err)
}

// isRateLimitError determines if an error is due to rate limiting
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	if errResp, ok := err.(*github.ErrorResponse); ok {
		statusCode := errResp.Response.StatusCode
		return (statusCode == http.StatusForbidden && errResp.Message == "rate limit") || statusCode == http.StatusTooManyRequests
	}

	return false
}

// isRetryableError determines if an error should be retried
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errResp, ok := err.(*github.ErrorResponse); ok {
		code := errResp.Response.StatusCode
		return code == http.StatusTooManyRequests ||
			code == http.StatusInternalServerError ||
			code == http.StatusBadGateway ||
			code == http.StatusServiceUnavailable ||
			code == http.StatusGatewayTimeout
	}

	// Also retry on network/transport errors
	_, isNetError := err.(*url.Error)
	return isNetError
}

// calculateBackoff computes the backoff duration using exponential backoff with jitter
func calculateBackoff(attempt int, initialDelay time.Duration, factor float64, maxDelay time.Duration) time.Duration {
	backoff := float64(initialDelay) * math.Pow(factor, float64(attempt))

	// Add some jitter (±20%)
	jitter := backoff * 0.2 * (rand.Float64()*2 - 1)
	backoff = backoff + jitter

	if backoff > float64(maxDelay) {
		backoff = float64(maxDelay)
	}

	return time.Duration(backoff)
}
