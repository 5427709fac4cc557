// Package api calls the JSON API configured in the user's preferences.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/username/weekcal/internal/pubsub"
	"github.com/username/weekcal/internal/store"
)

const (
	defaultTimeout = 30 * time.Second

	// GenericErrorMessage is published on pubsub.TopicErrorMessage when a
	// non-silent request fails.
	GenericErrorMessage = "An error occurred"
)

// ErrNoServer is returned when neither preferences nor configuration name an API server
var ErrNoServer = errors.New("no API server configured")

// StatusError reports a server side failure (status 500 and above)
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API request failed with status %s", e.Status)
	}
	return fmt.Sprintf("API request failed with status %s: %s", e.Status, e.Body)
}

// Options tune a single Fetch call
type Options struct {
	// Method defaults to GET
	Method string
	// Silent suppresses progress and error messages on the bus
	Silent bool
	// Retries is the number of attempts for transport errors and 5xx
	// responses. Values below 1 mean a single attempt.
	Retries int
}

// Client represents the API client
type Client struct {
	prefs         *store.Preferences
	bus           *pubsub.Bus
	defaultServer string
	httpClient    *http.Client
	logger        *zap.Logger
	retryDelay    time.Duration
}

// NewClient creates a new API client. defaultServer is used when the
// preferences hold no API server; a zero timeout means 30 seconds.
func NewClient(prefs *store.Preferences, bus *pubsub.Bus, defaultServer string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		prefs:         prefs,
		bus:           bus,
		defaultServer: defaultServer,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:     logger,
		retryDelay: time.Second,
	}
}

// Fetch calls endpoint on the API server and decodes the JSON response into out.
//
// POST, PUT, PATCH and DELETE send body as JSON; other methods encode it as
// the query string (body may then be url.Values, map[string]string or
// map[string]any). Responses with status 500 and above are errors.
// Unless opts.Silent is set, progress 0, 25 and 100 is published on
// pubsub.TopicLoadingProgress and failures on pubsub.TopicErrorMessage.
func (c *Client) Fetch(ctx context.Context, endpoint string, opts Options, body, out any) error {
	err := c.fetch(ctx, endpoint, opts, body, out)
	if err != nil && !opts.Silent {
		c.publish(pubsub.TopicErrorMessage, GenericErrorMessage)
	}
	return err
}

func (c *Client) fetch(ctx context.Context, endpoint string, opts Options, body, out any) error {
	if !opts.Silent {
		c.publish(pubsub.TopicLoadingProgress, 0)
	}

	server, err := c.server(ctx)
	if err != nil {
		return err
	}
	token, err := c.prefs.JWTToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	target := server + endpoint
	var payload []byte
	if hasJSONBody(method) {
		if body == nil {
			body = map[string]any{}
		}
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	} else {
		qs, err := encodeQuery(body)
		if err != nil {
			return err
		}
		if qs != "" {
			target += "?" + qs
		}
	}

	if !opts.Silent {
		c.publish(pubsub.TopicLoadingProgress, 25)
	}

	attempts := opts.Retries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = c.doRequestOnce(ctx, method, target, token, payload, out)
		if lastErr == nil || !retryable(lastErr) {
			break
		}

		c.logger.Warn("Request failed, retrying",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", attempts),
			zap.Error(lastErr))

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}
	}

	if !opts.Silent {
		c.publish(pubsub.TopicLoadingProgress, 100)
	}

	if lastErr != nil {
		if attempts > 1 {
			return fmt.Errorf("request failed after %d attempts: %w", attempts, lastErr)
		}
		return lastErr
	}
	return nil
}

// doRequestOnce performs a single HTTP request
func (c *Client) doRequestOnce(ctx context.Context, method, target, token string, payload []byte, out any) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("API response",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)))

	if resp.StatusCode >= 500 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func (c *Client) server(ctx context.Context) (string, error) {
	server, err := c.prefs.APIServer(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read API server: %w", err)
	}
	if server == "" {
		server = c.defaultServer
	}
	if server == "" {
		return "", ErrNoServer
	}
	return strings.TrimRight(server, "/"), nil
}

func (c *Client) publish(topic pubsub.Topic, payload any) {
	if c.bus != nil {
		c.bus.Publish(topic, payload)
	}
}

func hasJSONBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	var urlErr *url.Error
	return errors.As(err, &statusErr) || errors.As(err, &urlErr)
}

// encodeQuery turns a GET body into a query string
func encodeQuery(body any) (string, error) {
	switch b := body.(type) {
	case nil:
		return "", nil
	case url.Values:
		return b.Encode(), nil
	case map[string]string:
		values := url.Values{}
		for k, v := range b {
			values.Set(k, v)
		}
		return values.Encode(), nil
	case map[string][]string:
		return url.Values(b).Encode(), nil
	case map[string]any:
		values := url.Values{}
		for k, raw := range b {
			switch v := raw.(type) {
			case []string:
				values[k] = v
			case []any:
				for _, item := range v {
					values.Add(k, fmt.Sprint(item))
				}
			case nil:
				values.Set(k, "")
			default:
				values.Set(k, fmt.Sprint(v))
			}
		}
		return values.Encode(), nil
	default:
		return "", fmt.Errorf("cannot encode %T as query string", body)
	}
}
