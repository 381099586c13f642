package graphics

import (
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureCache loads each texture path once and releases them all together.
type TextureCache struct {
	mu       sync.RWMutex
	textures map[string]uint32
	order    []uint32

	load    func(path string) (uint32, error)
	release func(ids []uint32)
}

// NewTextureCache creates a cache backed by LoadTexture.
func NewTextureCache() *TextureCache {
	return newTextureCache(LoadTexture, func(ids []uint32) {
		gl.DeleteTextures(int32(len(ids)), &ids[0])
	})
}

func newTextureCache(load func(string) (uint32, error), release func([]uint32)) *TextureCache {
	return &TextureCache{
		textures: make(map[string]uint32),
		load:     load,
		release:  release,
	}
}

// Get returns the texture for path, loading it on first use.
func (c *TextureCache) Get(path string) (uint32, error) {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}

	tex, err := c.load(path)
	if err != nil {
		return 0, err
	}
	c.textures[path] = tex
	c.order = append(c.order, tex)
	return tex, nil
}

// Len returns the number of distinct textures held.
func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Dispose deletes every texture, most recently loaded first. The cache is
// empty afterwards.
func (c *TextureCache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.order) == 0 {
		return
	}
	ids := make([]uint32, len(c.order))
	for i, id := range c.order {
		ids[len(ids)-1-i] = id
	}
	c.release(ids)

	c.textures = make(map[string]uint32)
	c.order = nil
}
