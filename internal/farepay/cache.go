package farepay

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// CachedFetcher memoizes successful fetches per card for a fixed window.
type CachedFetcher struct {
	next  Fetcher
	ttl   time.Duration
	pages *cache.Cache
	log   zerolog.Logger
}

// NewCachedFetcher wraps next. A non-positive ttl disables caching.
func NewCachedFetcher(next Fetcher, ttl time.Duration, log zerolog.Logger) *CachedFetcher {
	f := &CachedFetcher{next: next, ttl: ttl, log: log}
	if ttl > 0 {
		f.pages = cache.New(ttl, 2*ttl)
	}
	return f
}

// FetchActivity returns the cached page for card, fetching it on a miss.
// Errors are never cached.
func (f *CachedFetcher) FetchActivity(ctx context.Context, card string) (string, error) {
	if f.pages == nil {
		return f.next.FetchActivity(ctx, card)
	}
	if page, ok := f.pages.Get(card); ok {
		f.log.Debug().Str("card", card).Msg("activity cache hit")
		return page.(string), nil
	}

	page, err := f.next.FetchActivity(ctx, card)
	if err != nil {
		return "", err
	}
	f.pages.Set(card, page, cache.DefaultExpiration)
	f.log.Debug().Str("card", card).Dur("ttl", f.ttl).Msg("activity cached")
	return page, nil
}

// Forget drops any cached page for card.
func (f *CachedFetcher) Forget(card string) {
	if f.pages != nil {
		f.pages.Delete(card)
	}
}
