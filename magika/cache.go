package magika

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// engineCache is the process-scoped, thread-safe cache of loaded
// Scanners keyed by (assetsDir, modelName), per spec.md §9's "Global
// state" note. singleflight.Group collapses concurrent Open calls for
// the same key into a single load; the map underneath remembers the
// result so later calls skip the group entirely.
var engineCache = struct {
	group singleflight.Group
	mu    sync.RWMutex
	byKey map[string]*Scanner
}{byKey: make(map[string]*Scanner)}

func cacheKey(assetsDir, modelName string) string {
	return assetsDir + "\x00" + modelName
}

// Open loads (or returns an already-loaded) Scanner for the given
// assets directory and model name. It is safe to call concurrently:
// the first caller for a given key performs the load, and every other
// concurrent or subsequent caller for that key observes the same
// *Scanner without reloading.
//
// Options only take effect on the call that actually performs the load;
// once a (assetsDir, modelName) pair is cached, later Open calls for
// that pair return the cached Scanner regardless of the options passed.
func Open(assetsDir, modelName string, opts ...Option) (*Scanner, error) {
	key := cacheKey(assetsDir, modelName)

	engineCache.mu.RLock()
	if s, ok := engineCache.byKey[key]; ok {
		engineCache.mu.RUnlock()
		return s, nil
	}
	engineCache.mu.RUnlock()

	v, err, _ := engineCache.group.Do(key, func() (any, error) {
		engineCache.mu.RLock()
		if s, ok := engineCache.byKey[key]; ok {
			engineCache.mu.RUnlock()
			return s, nil
		}
		engineCache.mu.RUnlock()

		s, err := newScanner(assetsDir, modelName, opts...)
		if err != nil {
			return nil, err
		}

		engineCache.mu.Lock()
		engineCache.byKey[key] = s
		engineCache.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Scanner), nil
}

// OpenUncached behaves like Open but bypasses the process-scoped cache
// entirely, always performing a fresh load. Tests and callers that need
// distinct Scanner instances for the same (assetsDir, modelName) pair
// (e.g. with different WithBackend stubs) should use this instead.
func OpenUncached(assetsDir, modelName string, opts ...Option) (*Scanner, error) {
	return newScanner(assetsDir, modelName, opts...)
}
