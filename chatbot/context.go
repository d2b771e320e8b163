package chatbot

import (
	"sync"

	"github.com/shyamyadavji/weather/datasource"
	"github.com/shyamyadavji/weather/payload"
)

// Context holds the process-lifetime conversation state: the last resolved
// location in canonical form and a single-slot payload cache per endpoint
// kind, keyed implicitly by that location. Resolving a different location
// discards every cached payload for the old one.
type Context struct {
	mu           sync.Mutex
	lastLocation string
	cache        map[datasource.EndpointKind]payload.Tree
	hitCount     int
	missCount    int
}

// NewContext creates an empty conversation context.
func NewContext() *Context {
	return &Context{
		cache: make(map[datasource.EndpointKind]payload.Tree),
	}
}

// LastLocation returns the canonical form of the last resolved location, or
// "" when no location has been resolved yet.
func (c *Context) LastLocation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastLocation
}

// Cached returns the cached payload for kind if location matches the last
// resolved location and a payload for that kind exists.
func (c *Context) Cached(location string, kind datasource.EndpointKind) (payload.Tree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if location == c.lastLocation {
		if tree, ok := c.cache[kind]; ok && tree != nil {
			c.hitCount++
			return tree, true
		}
	}
	c.missCount++
	return nil, false
}

// Commit records a successfully fetched payload and resolves location. A
// location change empties the cache first; the old location's payloads are
// never reachable again.
func (c *Context) Commit(location string, kind datasource.EndpointKind, tree payload.Tree) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolveLocked(location)
	c.cache[kind] = tree
}

// CommitAll resolves location and replaces the cache with the given payloads
// in one step. Used by the search path, which fetches all endpoints at once.
func (c *Context) CommitAll(location string, payloads map[datasource.EndpointKind]payload.Tree) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolveLocked(location)
	c.cache = make(map[datasource.EndpointKind]payload.Tree, len(payloads))
	for kind, tree := range payloads {
		c.cache[kind] = tree
	}
}

func (c *Context) resolveLocked(location string) {
	if location != c.lastLocation {
		c.lastLocation = location
		c.cache = make(map[datasource.EndpointKind]payload.Tree)
	}
}

// Stats returns the cache hit and miss counts.
func (c *Context) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hitCount, c.missCount
}
