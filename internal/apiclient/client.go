// Package apiclient reads planning records from the REST backend and sends
// the few mutations the CLI supports.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/strata/internal/cache"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
)

const (
	PathStrategies     = "/api/strategies"
	PathProjects       = "/api/projects"
	PathActions        = "/api/actions"
	PathChecklistItems = "/api/checklist-items"
	PathMe             = "/api/me"
)

// Config holds connection settings for the planning API.
type Config struct {
	BaseURL    string
	Token      string
	TimeoutMs  int
	MaxRetries int
	CacheTTL   time.Duration
}

// Client fetches wire records from the planning API.
type Client interface {
	Strategies(ctx context.Context) ([]importer.StrategyRecord, error)
	Projects(ctx context.Context) ([]importer.ProjectRecord, error)
	Actions(ctx context.Context) ([]importer.ActionRecord, error)
	ChecklistItems(ctx context.Context) ([]importer.ChecklistRecord, error)
	Me(ctx context.Context) (*importer.ProfileRecord, error)

	// Refresh drops every cached read so the next fetch goes to the server.
	Refresh(ctx context.Context) error

	// UpdateActionStatus changes an action's status and invalidates every
	// cached read that could include it.
	UpdateActionStatus(ctx context.Context, id string, status domain.ActionStatus) (*importer.ActionRecord, error)
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	cache    cache.Cache
	observer Observer
}

// New creates a Client. A nil cache disables caching and a nil observer
// discards events.
func New(cfg Config, c cache.Cache, observer Observer) Client {
	if c == nil {
		c = cache.Noop{}
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 10000
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		cache:    c,
		observer: observer,
	}
}

func (c *httpClient) Strategies(ctx context.Context) ([]importer.StrategyRecord, error) {
	var out []importer.StrategyRecord
	if err := c.getJSON(ctx, PathStrategies, &out); err != nil {
		return nil, fmt.Errorf("fetching strategies: %w", err)
	}
	return out, nil
}

func (c *httpClient) Projects(ctx context.Context) ([]importer.ProjectRecord, error) {
	var out []importer.ProjectRecord
	if err := c.getJSON(ctx, PathProjects, &out); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	return out, nil
}

func (c *httpClient) Actions(ctx context.Context) ([]importer.ActionRecord, error) {
	var out []importer.ActionRecord
	if err := c.getJSON(ctx, PathActions, &out); err != nil {
		return nil, fmt.Errorf("fetching actions: %w", err)
	}
	return out, nil
}

func (c *httpClient) ChecklistItems(ctx context.Context) ([]importer.ChecklistRecord, error) {
	var out []importer.ChecklistRecord
	if err := c.getJSON(ctx, PathChecklistItems, &out); err != nil {
		return nil, fmt.Errorf("fetching checklist items: %w", err)
	}
	return out, nil
}

func (c *httpClient) Me(ctx context.Context) (*importer.ProfileRecord, error) {
	var out importer.ProfileRecord
	if err := c.getJSON(ctx, PathMe, &out); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &out, nil
}

// readPaths are every GET the client caches.
var readPaths = []string{PathStrategies, PathProjects, PathActions, PathChecklistItems, PathMe}

func (c *httpClient) Refresh(ctx context.Context) error {
	if err := c.cache.Invalidate(ctx, readPaths...); err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	return nil
}

func (c *httpClient) UpdateActionStatus(ctx context.Context, id string, status domain.ActionStatus) (*importer.ActionRecord, error) {
	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	data, err := c.send(ctx, http.MethodPatch, PathActions+"/"+url.PathEscape(id), body)
	if err != nil {
		return nil, fmt.Errorf("updating action %s: %w", id, err)
	}
	if err := c.cache.Invalidate(ctx, PathActions, PathChecklistItems); err != nil {
		return nil, fmt.Errorf("invalidating cache: %w", err)
	}

	var out importer.ActionRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding action: %w", err)
	}
	return &out, nil
}

// getJSON serves path from the cache when possible and otherwise fetches
// and caches it.
func (c *httpClient) getJSON(ctx context.Context, path string, out any) error {
	if data, ok, err := c.cache.Get(ctx, path); err == nil && ok {
		c.observer.OnRequestComplete(RequestEvent{Method: http.MethodGet, Path: path, CacheHit: true, Success: true})
		return decode(data, out)
	}

	data, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := decode(data, out); err != nil {
		return err
	}
	// A failed cache write only costs a refetch.
	_ = c.cache.Set(ctx, path, data, c.cfg.CacheTTL)
	return nil
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// statusError is a non-2xx response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.code, e.body)
}

// send performs a request with bounded retries. Client errors (4xx) and
// context cancellation are never retried.
func (c *httpClient) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if c.cfg.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var (
		lastErr  error
		status   int
		attempts int
	)
	maxAttempts := 1 + c.cfg.MaxRetries
	for attempts < maxAttempts {
		attempts++
		data, code, err := c.doRequest(ctx, method, path, body)
		status = code
		if err == nil {
			c.observer.OnRequestComplete(RequestEvent{
				Method: method, Path: path, Status: code, Attempts: attempts,
				LatencyMs: time.Since(start).Milliseconds(), Success: true,
			})
			return data, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		var se *statusError
		if errors.As(err, &se) && se.code < 500 {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observer.OnRequestComplete(RequestEvent{
		Method: method, Path: path, Status: status, Attempts: attempts,
		LatencyMs: time.Since(start).Milliseconds(), ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *httpClient) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &statusError{code: resp.StatusCode, body: string(bytes.TrimSpace(data))}
	}
	return data, resp.StatusCode, nil
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.code == http.StatusUnauthorized || se.code == http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		case se.code == http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case se.code < 500:
			return err
		}
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "CLIENT_ERROR"
	}
}
