package services

import (
	"resultsd/internal/providers"

	json "github.com/goccy/go-json"
)

// readThrough is the cache-first read every query uses: a hit returns the
// stored payload, a miss computes, encodes and stores it. The cache never
// fails a read; anything it cannot serve is recomputed.
type readThrough struct {
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func (rt readThrough) fetch(key string, compute func() (any, error)) (json.RawMessage, error) {
	if data, ok := rt.cache.Get(key); ok {
		return data, nil
	}

	result, err := compute()
	if err != nil {
		return nil, err
	}

	gson, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	rt.cache.Set(key, gson)
	return gson, nil
}

// store writes an already computed value through to the cache.
func (rt readThrough) store(key string, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		rt.logger.Warnf(providers.TypeApp, "Cache write-through for %s skipped: %s", key, err)
		return
	}
	rt.cache.Set(key, gson)
}

func (rt readThrough) drop(key string) {
	rt.cache.Delete(key)
}
