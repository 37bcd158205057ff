// Package client holds HTTP clients for the external services the
// ledger depends on: rates, tokenization, the journal of record and
// notifications.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const defaultTimeout = 5 * time.Second

// httpError marks a response that may be worth retrying.
type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type baseClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

func newBaseClient(baseURL, apiKey string, logger zerolog.Logger) baseClient {
	return baseClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// doJSON performs a JSON request with exponential backoff on network
// errors and retryable status codes. out may be nil when the response
// body is not needed.
func (c *baseClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 1 * time.Second
	b.MaxElapsedTime = 4 * time.Second

	return backoff.Retry(func() error {
		err := c.doOnce(ctx, method, path, body, out)
		if err == nil {
			return nil
		}

		var httpErr *httpError
		if errors.As(err, &httpErr) && !httpErr.retryable() {
			return backoff.Permanent(err)
		}

		c.logger.Warn().Err(err).Str("path", path).Msg("request failed, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func (c *baseClient) doOnce(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return &httpError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
