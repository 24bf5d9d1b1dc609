package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/cache"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
)

func testConfig(baseURL string) Config {
	return Config{BaseURL: baseURL, Token: "tok", TimeoutMs: 2000, MaxRetries: 1, CacheTTL: time.Minute}
}

type recordingObserver struct {
	events []RequestEvent
}

func (o *recordingObserver) OnRequestComplete(e RequestEvent) { o.events = append(o.events, e) }

func TestClient_Strategies_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathStrategies, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]importer.StrategyRecord{
			{ID: "s1", Title: "Grow", StartDate: "2025-01-01", TargetDate: "2025-06-30"},
		})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(testConfig(srv.URL), nil, obs)
	got, err := client.Strategies(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grow", got[0].Title)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, http.StatusOK, obs.events[0].Status)
}

func TestClient_Actions_DecodesStringBool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a1","strategyId":"s1","projectId":null,"title":"x","isArchived":"true"}]`))
	}))
	defer srv.Close()

	got, err := New(testConfig(srv.URL), nil, nil).Actions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsArchived.Bool())
	assert.Nil(t, got[0].ProjectID)
}

func TestClient_CachesReads(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(testConfig(srv.URL), cache.NewMemoryCache(), obs)
	ctx := context.Background()

	_, err := client.Projects(ctx)
	require.NoError(t, err)
	_, err = client.Projects(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	require.Len(t, obs.events, 2)
	assert.True(t, obs.events[1].CacheHit)
}

func TestClient_Refresh_BypassesSharedCache(t *testing.T) {
	var title atomic.Value
	title.Store("Old")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]importer.ActionRecord{{ID: "a1", StrategyID: "s1", Title: title.Load().(string)}})
	}))
	defer srv.Close()

	// Two processes sharing one cache, as with Redis.
	shared := cache.NewMemoryCache()
	other := New(testConfig(srv.URL), shared, nil)
	client := New(testConfig(srv.URL), shared, nil)
	ctx := context.Background()

	_, err := other.Actions(ctx)
	require.NoError(t, err)
	title.Store("New")

	stale, err := client.Actions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Old", stale[0].Title)

	require.NoError(t, client.Refresh(ctx))
	fresh, err := client.Actions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", fresh[0].Title)
}

func TestClient_UpdateActionStatus_InvalidatesCache(t *testing.T) {
	var gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&gets, 1)
			w.Write([]byte(`[]`))
		case http.MethodPatch:
			assert.Equal(t, "/api/actions/a1", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "achieved", body["status"])
			w.Write([]byte(`{"id":"a1","strategyId":"s1","title":"x","status":"achieved","isArchived":"false"}`))
		}
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), cache.NewMemoryCache(), nil)
	ctx := context.Background()

	_, err := client.Actions(ctx)
	require.NoError(t, err)

	rec, err := client.UpdateActionStatus(ctx, "a1", domain.ActionAchieved)
	require.NoError(t, err)
	assert.Equal(t, "achieved", rec.Status)

	_, err = client.Actions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gets), "read after mutation must refetch")
}

func TestClient_RetryOnServerError(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		w.Write([]byte(`{"id":"u1","name":"Sam","timezone":"UTC","role":"leader"}`))
	}))
	defer srv.Close()

	me, err := New(testConfig(srv.URL), nil, nil).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sam", me.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestClient_RetryExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL), nil, nil).Strategies(context.Background())
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestClient_UnauthorizedIsNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := New(testConfig(srv.URL), nil, obs).Actions(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	require.Len(t, obs.events, 1)
	assert.Equal(t, "UNAUTHORIZED", obs.events[0].ErrorCode)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(testConfig(srv.URL), nil, nil).UpdateActionStatus(context.Background(), "nope", domain.ActionAchieved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	_, err := New(cfg, nil, nil).Strategies(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	_, err := New(cfg, nil, nil).Strategies(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_NotConfigured(t *testing.T) {
	_, err := New(Config{}, nil, nil).Strategies(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
