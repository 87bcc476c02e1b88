package processors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRateCache struct {
	mu    sync.Mutex
	rates map[string]float64
}

func newMemoryRateCache() *memoryRateCache {
	return &memoryRateCache{rates: map[string]float64{}}
}

func (m *memoryRateCache) GetRate(ctx context.Context, key string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rates[key]
	return r, ok, nil
}

func (m *memoryRateCache) SetRate(ctx context.Context, key string, rate float64, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[key] = rate
	return nil
}

func frankfurterServer(t *testing.T, hits *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExchangeRateProvider_FetchesAndCaches(t *testing.T) {
	var hits int32
	srv := frankfurterServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024-01-15", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "EUR", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"amount":1.0,"base":"USD","date":"2024-01-15","rates":{"EUR":0.9157}}`)
	})

	p := NewExchangeRateProvider(srv.URL+"/", time.Second, time.Hour, nil)

	rate, err := p.GetRate(context.Background(), "2024-01-15", "usd", "eur")
	require.NoError(t, err)
	assert.Equal(t, 0.9157, rate)

	rate, err = p.GetRate(context.Background(), "2024-01-15", "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.9157, rate)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second call must be served from cache")
}

func TestExchangeRateProvider_LatestWhenDateEmpty(t *testing.T) {
	var hits int32
	srv := frankfurterServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		fmt.Fprint(w, `{"rates":{"GBP":0.79}}`)
	})

	p := NewExchangeRateProvider(srv.URL, time.Second, time.Hour, nil)
	rate, err := p.GetRate(context.Background(), "", "USD", "GBP")
	require.NoError(t, err)
	assert.Equal(t, 0.79, rate)

	rate, err = p.GetRate(context.Background(), "LATEST", "USD", "GBP")
	require.NoError(t, err)
	assert.Equal(t, 0.79, rate)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "both spellings share one cache entry")
}

func TestExchangeRateProvider_SameCurrency(t *testing.T) {
	var hits int32
	srv := frankfurterServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {})

	rate, err := NewExchangeRateProvider(srv.URL, time.Second, time.Hour, nil).GetRate(context.Background(), "2024-01-15", "EUR", "eur")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestExchangeRateProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			},
			wantErr: "status",
		},
		{
			name: "missing rate",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"rates":{"GBP":0.79}}`)
			},
			wantErr: "no EUR rate",
		},
		{
			name: "non-positive rate",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"rates":{"EUR":0}}`)
			},
			wantErr: "non-positive",
		},
		{
			name: "invalid body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `<html>`)
			},
			wantErr: "decoding",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := frankfurterServer(t, &hits, tt.handler)

			_, err := NewExchangeRateProvider(srv.URL, time.Second, time.Hour, nil).GetRate(context.Background(), "2024-01-15", "USD", "EUR")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExchangeRateProvider_ClientTimeout(t *testing.T) {
	var hits int32
	srv := frankfurterServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	_, err := NewExchangeRateProvider(srv.URL, 50*time.Millisecond, time.Hour, nil).GetRate(context.Background(), "2024-01-15", "USD", "EUR")
	require.Error(t, err)
}

func TestExchangeRateProvider_SharedCache(t *testing.T) {
	var hits int32
	srv := frankfurterServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{"EUR":0.92}}`)
	})
	shared := newMemoryRateCache()

	// A miss in both tiers fills the shared cache.
	rate, err := NewExchangeRateProvider(srv.URL, time.Second, time.Hour, shared).GetRate(context.Background(), "2024-01-15", "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
	assert.Equal(t, 0.92, shared.rates["fx-2024-01-15-USD-EUR"])

	// A fresh provider, as on another instance, is served by the shared tier.
	rate, err = NewExchangeRateProvider(srv.URL, time.Second, time.Hour, shared).GetRate(context.Background(), "2024-01-15", "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
