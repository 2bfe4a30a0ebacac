// Package assets handles assembly loading and caching.
package assets

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/demo"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/pkg/assembly"
)

// LoadFunc builds the parts of a named assembly at a mesh resolution.
type LoadFunc func(name string, cells int) ([]assembly.Part, error)

// Key identifies one loaded assembly. Files also carry their modification
// time so an edited file is loaded again.
type Key struct {
	Name     string
	Cells    int
	Modified time.Time
}

// Manager loads assemblies and keeps them for reuse. Tessellated parts are
// immutable, so a cached tree can back any number of sessions.
type Manager struct {
	load  LoadFunc
	cache *Cache[Key, []assembly.Part]
	mu    sync.Mutex
	log   *zap.Logger
}

// NewManager creates a manager backed by demo.Load.
func NewManager() *Manager {
	return NewManagerWith(demo.Load)
}

// NewManagerWith creates a manager backed by load.
func NewManagerWith(load LoadFunc) *Manager {
	return &Manager{
		load:  load,
		cache: NewCache[Key, []assembly.Part](),
		log:   logger.Named("assets"),
	}
}

// Load returns the parts of an assembly, building them on first use.
func (m *Manager) Load(name string, cells int) ([]assembly.Part, error) {
	key := Key{Name: name, Cells: cells}
	if IsFile(name) {
		if info, err := os.Stat(name); err == nil {
			key.Modified = info.ModTime()
		}
	}

	if parts, ok := m.cache.Get(key); ok {
		m.log.Debug("assembly cache hit", zap.String("name", name), zap.Int("cells", cells))
		return parts, nil
	}

	// Serialize builds so a slow tessellation is not repeated.
	m.mu.Lock()
	defer m.mu.Unlock()
	if parts, ok := m.cache.Peek(key); ok {
		return parts, nil
	}

	start := time.Now()
	parts, err := m.load(name, cells)
	if err != nil {
		return nil, err
	}
	m.cache.Set(key, parts)
	m.log.Info("assembly built",
		zap.String("name", name),
		zap.Int("cells", cells),
		zap.Duration("took", time.Since(start)))
	return parts, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops every cached assembly.
func (m *Manager) Close() {
	m.cache.Clear()
}

// IsFile reports whether name refers to an assembly file rather than a
// built-in assembly.
func IsFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Cache is a simple in-memory cache.
type Cache[K comparable, V any] struct {
	data map[K]V
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves an item from cache and counts the lookup.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Peek retrieves an item without touching the stats.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	return v, ok
}

// Set stores an item in cache.
func (c *Cache[K, V]) Set(key K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
}

// Len returns the number of cached items.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[K]V)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
