package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/avelora/fincore/internal/usecase"
)

// CachedRateProvider decorates a RateProvider with a short-lived Redis
// cache so bursts of conversions for the same pair reuse one quote.
type CachedRateProvider struct {
	inner  usecase.RateProvider
	cache  *Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedRateProvider creates a caching decorator around a rate
// provider.
func NewCachedRateProvider(inner usecase.RateProvider, cache *Cache, ttl time.Duration, logger zerolog.Logger) *CachedRateProvider {
	return &CachedRateProvider{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetRate returns a cached quote when one is fresh, otherwise fetches
// from the inner provider and caches the result. Cache failures fall
// through to the provider.
func (p *CachedRateProvider) GetRate(ctx context.Context, fromCurrency, toCurrency string) (usecase.RateQuote, error) {
	key := "rate:" + fromCurrency + ":" + toCurrency

	if cached, err := p.cache.Get(ctx, key); err == nil {
		var quote usecase.RateQuote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			return quote, nil
		}
	}

	quote, err := p.inner.GetRate(ctx, fromCurrency, toCurrency)
	if err != nil {
		return usecase.RateQuote{}, err
	}

	if data, err := json.Marshal(quote); err == nil {
		if err := p.cache.Set(ctx, key, string(data), p.ttl); err != nil {
			p.logger.Warn().Err(err).Str("pair", fromCurrency+"/"+toCurrency).Msg("rate cache write failed")
		}
	}

	return quote, nil
}
