package texture

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"
)

// UploadFunc turns decoded pixels into a texture handle.
type UploadFunc func(img *image.RGBA) (uint32, error)

// LoadFunc reads and decodes a texture file.
type LoadFunc func(path string) (*image.RGBA, error)

// Cache loads each texture path once and hands out the same handle to every
// caller. Paths are compared after filepath.Clean.
type Cache struct {
	load    LoadFunc
	upload  UploadFunc
	release func(id uint32)
	log     *zap.Logger
	byPath  map[string]uint32
}

// NewCache returns a cache backed by Load and the GL uploader.
func NewCache(log *zap.Logger) *Cache {
	return NewCacheWith(Load, Upload, Delete, log)
}

// NewCacheWith returns a cache with explicit load, upload and release steps.
// release may be nil.
func NewCacheWith(load LoadFunc, upload UploadFunc, release func(uint32), log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		load:    load,
		upload:  upload,
		release: release,
		log:     log,
		byPath:  make(map[string]uint32),
	}
}

// Get returns the texture for path, loading it on first use.
func (c *Cache) Get(path string) (uint32, error) {
	key := filepath.Clean(path)
	if id, ok := c.byPath[key]; ok {
		return id, nil
	}

	img, err := c.load(key)
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", key, err)
	}
	id, err := c.upload(img)
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", key, err)
	}

	c.byPath[key] = id
	c.log.Debug("texture loaded",
		zap.String("path", key),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
		zap.Uint32("id", id))
	return id, nil
}

// Len returns the number of distinct textures loaded.
func (c *Cache) Len() int { return len(c.byPath) }

// Clear releases every texture and empties the cache.
func (c *Cache) Clear() {
	for key, id := range c.byPath {
		if c.release != nil {
			c.release(id)
		}
		delete(c.byPath, key)
	}
}
