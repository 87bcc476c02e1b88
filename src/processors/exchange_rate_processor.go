package processors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/patrickmn/go-cache"
)

// RateCache is a shared cache tier sitting behind the in-process one.
type RateCache interface {
	GetRate(ctx context.Context, key string) (float64, bool, error)
	SetRate(ctx context.Context, key string, rate float64, ttl time.Duration) error
}

// ExchangeRateProvider fetches daily rates from a Frankfurter-style API.
type ExchangeRateProvider struct {
	baseURL string
	client  *http.Client
	local   *cache.Cache
	shared  RateCache
	ttl     time.Duration
}

// NewExchangeRateProvider builds a provider. shared may be nil.
func NewExchangeRateProvider(baseURL string, timeout, ttl time.Duration, shared RateCache) *ExchangeRateProvider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ExchangeRateProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		local:   cache.New(ttl, 2*ttl),
		shared:  shared,
		ttl:     ttl,
	}
}

func rateCacheKey(date, from, to string) string {
	return fmt.Sprintf("fx-%s-%s-%s", date, from, to)
}

// GetRate returns how many units of `to` one unit of `from` buys on date
// (YYYY-MM-DD, empty for the latest rate).
func (p *ExchangeRateProvider) GetRate(ctx context.Context, date, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return 1.0, nil
	}
	date = strings.TrimSpace(date)
	if date == "" || strings.EqualFold(date, "latest") {
		date = "latest"
	}
	log := logger.FromContext(ctx)

	// 1. In-process cache
	key := rateCacheKey(date, from, to)
	if rate, found := p.local.Get(key); found {
		return rate.(float64), nil
	}

	// 2. Shared cache
	if p.shared != nil {
		rate, found, err := p.shared.GetRate(ctx, key)
		if err != nil {
			log.Warn("Shared rate cache lookup failed", "key", key, "error", err)
		} else if found {
			p.local.Set(key, rate, cache.DefaultExpiration)
			return rate, nil
		}
	}

	// 3. API
	rate, err := p.fetch(ctx, date, from, to)
	if err != nil {
		return 0, err
	}

	p.local.Set(key, rate, cache.DefaultExpiration)
	if p.shared != nil {
		if err := p.shared.SetRate(ctx, key, rate, p.ttl); err != nil {
			log.Warn("Failed to store rate in shared cache", "key", key, "error", err)
		}
	}
	log.Debug("Fetched exchange rate", "date", date, "from", from, "to", to, "rate", rate)
	return rate, nil
}

func (p *ExchangeRateProvider) fetch(ctx context.Context, date, from, to string) (float64, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	endpoint := fmt.Sprintf("%s/%s?%s", p.baseURL, url.PathEscape(date), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("building forex request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("forex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("forex API returned status %s", resp.Status)
	}

	var body models.ForexResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding forex response: %w", err)
	}

	rate, ok := body.Rates[to]
	if !ok {
		return 0, fmt.Errorf("forex response has no %s rate", to)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("forex response has non-positive %s rate %v", to, rate)
	}
	return rate, nil
}
