package envi

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CubeCache is a read-through cache of loaded sub-cubes, keyed by the data
// file and the requested range. Interactive consumers that re-request
// overlapping regions (a viewer following pointer input, a tiled renderer)
// get repeat ranges without touching storage again.
type CubeCache struct {
	entries *lru.Cache[cubeCacheKey, *Cube]
}

type cubeCacheKey struct {
	dataPath string
	rng      DataRange
}

// NewCubeCache builds a cache holding at most maxEntries cubes, evicting in
// least-recently-used order.
func NewCubeCache(maxEntries int) (*CubeCache, error) {
	entries, err := lru.New[cubeCacheKey, *Cube](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create cube cache: %w", err)
	}
	return &CubeCache{entries: entries}, nil
}

// Load returns the cube for rng, reading it through r on a miss. Cached cubes
// are shared; callers must treat them as read-only.
func (c *CubeCache) Load(ctx context.Context, r *Reader, rng DataRange) (*Cube, error) {
	key := cubeCacheKey{dataPath: r.Options().DataPath, rng: rng}
	if cube, ok := c.entries.Get(key); ok {
		return cube, nil
	}
	if err := r.ReadData(ctx, rng); err != nil {
		return nil, err
	}
	cube := r.Cube()
	c.entries.Add(key, cube)
	return cube, nil
}

// Len reports the number of cached cubes.
func (c *CubeCache) Len() int { return c.entries.Len() }

// Purge drops every cached cube.
func (c *CubeCache) Purge() { c.entries.Purge() }
