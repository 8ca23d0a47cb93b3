package query

import (
	"strconv"

	"github.com/bastiangx/cluelist/pkg/wordlist"
	gocache "github.com/patrickmn/go-cache"
)

// viewCache memoizes filtered views by threshold for one dataset.
// Entries never expire; the whole cache is flushed when the dataset changes.
type viewCache struct {
	views  *gocache.Cache
	hits   int
	misses int
}

func newViewCache() *viewCache {
	return &viewCache{
		views: gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *viewCache) get(minClueCount int) (wordlist.WordList, bool) {
	if val, found := c.views.Get(strconv.Itoa(minClueCount)); found {
		c.hits++
		return val.(wordlist.WordList), true
	}
	c.misses++
	return nil, false
}

func (c *viewCache) set(minClueCount int, view wordlist.WordList) {
	c.views.Set(strconv.Itoa(minClueCount), view, gocache.NoExpiration)
}

func (c *viewCache) flush() {
	c.views.Flush()
	c.hits, c.misses = 0, 0
}

func (c *viewCache) stats() map[string]int {
	return map[string]int{
		"cachedViews": c.views.ItemCount(),
		"cacheHits":   c.hits,
		"cacheMisses": c.misses,
	}
}
