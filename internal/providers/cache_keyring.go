package providers

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// CacheKeyringInterface stamps cache keys with generations so a write can
// make every dependent entry unreachable without enumerating keys. The
// cache only deletes literal keys; stale stamped entries age out by TTL.
type CacheKeyringInterface interface {
	// CategoryKey builds a key whose validity ends with the next write to category.
	CategoryKey(category string, parts ...string) string
	// GlobalKey builds a key whose validity ends with the next write to any category.
	GlobalKey(parts ...string) string
	// Invalidate retires every key stamped for category and every global key.
	Invalidate(category string)
}

type CacheKeyring struct {
	global     atomic.Uint64
	categories sync.Map
}

func NewCacheKeyring() CacheKeyringInterface {
	return &CacheKeyring{}
}

// Category generations are shared by every spelling of a name, since the
// flat model may match categories case-insensitively. Only writes create
// an entry; a category never written reads as generation 0, so lookups
// with arbitrary names leave the map untouched.
func categoryName(category string) string {
	return strings.ToLower(category)
}

func (k *CacheKeyring) currentGeneration(category string) uint64 {
	if g, ok := k.categories.Load(categoryName(category)); ok {
		return g.(*atomic.Uint64).Load()
	}
	return 0
}

func (k *CacheKeyring) CategoryKey(category string, parts ...string) string {
	return strings.Join(parts, ":") + "#c" + strconv.FormatUint(k.currentGeneration(category), 10)
}

func (k *CacheKeyring) GlobalKey(parts ...string) string {
	return strings.Join(parts, ":") + "#g" + strconv.FormatUint(k.global.Load(), 10)
}

func (k *CacheKeyring) Invalidate(category string) {
	g, _ := k.categories.LoadOrStore(categoryName(category), atomic.NewUint64(0))
	g.(*atomic.Uint64).Inc()
	k.global.Inc()
}
