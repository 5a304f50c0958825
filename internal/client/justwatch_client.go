package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://apis.justwatch.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout   = 30 * time.Second
)

// UpstreamResponse is what the JustWatch API answered, error statuses included.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

type JustWatchClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewJustWatchClient(baseURL, userAgent string, timeout time.Duration) *JustWatchClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &JustWatchClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *JustWatchClient) PostGraphQL(ctx context.Context, body []byte) (*UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	return c.do(req)
}

func (c *JustWatchClient) GetContentURLs(ctx context.Context, path string) (*UpstreamResponse, error) {
	target := fmt.Sprintf("%s/content/urls?path=%s", c.baseURL, url.QueryEscape(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create content urls request: %w", err)
	}

	return c.do(req)
}

func (c *JustWatchClient) do(req *http.Request) (*UpstreamResponse, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	response, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	return &UpstreamResponse{
		StatusCode: response.StatusCode,
		Body:       responseBodyBytes,
	}, nil
}
