// Package assets caches decoded scene textures across model reloads.
package assets

import (
	"fmt"
	"image"
	"sync"
)

// Loader decodes an image file, downscaling it to maxSize.
type Loader func(path string, maxSize int) (*image.RGBA, error)

type key struct {
	path    string
	maxSize int
}

// TextureCache memoizes a Loader. Cached images are shared and must not be
// modified by callers.
type TextureCache struct {
	load Loader
	data map[key]*image.RGBA
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewTextureCache wraps load with a cache.
func NewTextureCache(load Loader) *TextureCache {
	return &TextureCache{
		load: load,
		data: make(map[key]*image.RGBA),
	}
}

// Load returns the cached image for path, decoding it on first use.
// Failed loads are not cached.
func (c *TextureCache) Load(path string, maxSize int) (*image.RGBA, error) {
	k := key{path, maxSize}

	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.data[k]; ok {
		c.hits++
		return img, nil
	}
	c.misses++

	img, err := c.load(path, maxSize)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}
	c.data[k] = img
	return img, nil
}

// Len returns the number of cached images.
func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats returns cache statistics.
func (c *TextureCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
