package geocoding

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"shipping-cost-service/internal/domain"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// client is the HTTP plumbing shared by all providers. Each call is made
// once; failover to another provider is the caller's job.
type client struct {
	session   *http.Client
	limiter   *rate.Limiter
	userAgent string
}

func newClient(timeout time.Duration, limiter *rate.Limiter, userAgent string) *client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		session:   &http.Client{Timeout: timeout},
		limiter:   limiter,
		userAgent: userAgent,
	}
}

func (c *client) newRequest(
	ctx context.Context,
	method string,
	endpoint string,
	header http.Header,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// call sends one request and decodes the JSON response into out.
// Every failure is reported as domain.ErrProviderUnavailable.
func (c *client) call(
	ctx context.Context,
	method string,
	endpoint string,
	query url.Values,
	header http.Header,
	payload any,
	out any,
) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait: %w", domain.ErrProviderUnavailable, err)
		}
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := c.newRequest(ctx, method, endpoint, header, body)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrProviderUnavailable, err)
	}

	return nil
}

// normalize collapses whitespace so requests and cache keys agree.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
