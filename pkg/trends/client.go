package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"trends-dashboard/pkg/logger"
)

const (
	interestPath = "/interest_over_time"
	relatedPath  = "/related_queries"
)

// ClientConfig holds provider query settings
type ClientConfig struct {
	BaseURL      string // one URL or a comma-separated list
	APIKey       string
	Geo          string
	Category     int
	Language     string
	TZOffset     int // minutes, as the provider expects
	RequestPause time.Duration
	Connection   ConnectionConfig
}

// Client fetches interest-over-time and related queries from the trends endpoint
type Client struct {
	config  ClientConfig
	urlPool *URLPool
	http    *fasthttp.Client
	sleep   func(time.Duration)
	log     *logger.Logger
}

// envelope is the provider's common response wrapper
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a trends client
func NewClient(config ClientConfig) (*Client, error) {
	pool := NewURLPool(config.BaseURL)
	if pool.IsEmpty() {
		return nil, fmt.Errorf("trends API URL is required")
	}
	if config.Connection.RequestTimeout == 0 {
		config.Connection = DefaultConnectionConfig()
	}

	return &Client{
		config:  config,
		urlPool: pool,
		http:    newFastHTTPClient(config.Connection),
		sleep:   time.Sleep,
		log:     logger.GetLogger().WithField("component", "trends_client"),
	}, nil
}

// WithHTTPClient replaces the underlying fasthttp client
func (c *Client) WithHTTPClient(client *fasthttp.Client) *Client {
	c.http = client
	return c
}

// WithSleeper replaces the function used for the pause between requests
func (c *Client) WithSleeper(sleep func(time.Duration)) *Client {
	c.sleep = sleep
	return c
}

// Fetch runs one logical query: interest over time, a fixed pause, then
// related queries. Nothing is retried.
func (c *Client) Fetch(ctx context.Context, keywords []string, window Window) (*Result, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}

	start := time.Now()
	log := c.log.WithFields(map[string]interface{}{
		"keywords_count": len(keywords),
		"timeframe":      window.Timeframe(),
	})
	log.Debug("Fetching interest over time")

	var interest InterestTable
	if err := c.get(ctx, interestPath, keywords, window, &interest); err != nil {
		log.WithError(err).WithField("error_kind", KindOf(err).String()).Warn("Interest over time request failed")
		return nil, err
	}

	if c.config.RequestPause > 0 {
		c.sleep(c.config.RequestPause)
	}

	log.Debug("Fetching related queries")
	related := make(RelatedQueries)
	if err := c.get(ctx, relatedPath, keywords, window, &related); err != nil {
		log.WithError(err).WithField("error_kind", KindOf(err).String()).Warn("Related queries request failed")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"samples":     len(interest.Index),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Trends fetch completed")

	return &Result{Interest: &interest, Related: related}, nil
}

func (c *Client) get(ctx context.Context, path string, keywords []string, window Window, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return &APIError{Kind: ErrorKindTransport, Message: err.Error(), Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.urlPool.Next() + path + "?" + c.query(keywords, window))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout(ctx)); err != nil {
		return &APIError{
			Kind:    ErrorKindTransport,
			Message: fmt.Sprintf("request failed: %v", err),
			Err:     err,
		}
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if resp.StatusCode() != fasthttp.StatusOK {
		message := env.Message
		if decodeErr != nil || message == "" {
			message = fmt.Sprintf("trends API returned status %d", resp.StatusCode())
		}
		return &APIError{
			Kind:       classifyError(resp.StatusCode(), message),
			StatusCode: resp.StatusCode(),
			Message:    message,
		}
	}

	if decodeErr != nil {
		return &APIError{
			Kind:       ErrorKindDecode,
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("failed to decode response: %v", decodeErr),
			Err:        decodeErr,
		}
	}

	if env.Status != "success" {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("trends API returned status: %s", env.Status)
		}
		return &APIError{
			Kind:       classifyError(resp.StatusCode(), message),
			StatusCode: resp.StatusCode(),
			Message:    message,
		}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Data, dest); err != nil {
		return &APIError{
			Kind:       ErrorKindDecode,
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("failed to decode response data: %v", err),
			Err:        err,
		}
	}
	return nil
}

func (c *Client) query(keywords []string, window Window) string {
	values := url.Values{}
	values.Set("keywords", strings.Join(keywords, ","))
	values.Set("timeframe", window.Timeframe())
	values.Set("geo", c.config.Geo)
	values.Set("cat", strconv.Itoa(c.config.Category))
	if c.config.Language != "" {
		values.Set("hl", c.config.Language)
	}
	values.Set("tz", strconv.Itoa(c.config.TZOffset))
	return values.Encode()
}

// timeout caps the request timeout at the context deadline
func (c *Client) timeout(ctx context.Context) time.Duration {
	timeout := c.config.Connection.RequestTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}
