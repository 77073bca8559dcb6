package urbandash

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrBadWidth is returned for a thumbnail width below 1.
var ErrBadWidth = errors.New("urbandash: thumbnail width must be positive")

// thumbStep rounds requested widths up so arbitrary ?w= values share entries.
const thumbStep = 40

type thumbKey struct {
	path  string
	width int
}

type thumbEntry struct {
	data    []byte
	modTime time.Time
	fetched time.Time
}

// ThumbCache is an in-memory cache of downscaled PNG previews with TTL.
// An entry is also dropped as soon as the source file's mtime changes.
type ThumbCache struct {
	mu       sync.RWMutex
	entries  map[thumbKey]thumbEntry
	ttl      time.Duration
	maxWidth int
}

// NewThumbCache creates a ThumbCache; widths are clamped to maxWidth.
func NewThumbCache(ttl time.Duration, maxWidth int) *ThumbCache {
	return &ThumbCache{
		entries:  make(map[thumbKey]thumbEntry),
		ttl:      ttl,
		maxWidth: maxWidth,
	}
}

func (c *ThumbCache) normalize(width int) int {
	if r := width % thumbStep; r != 0 {
		width += thumbStep - r
	}
	if c.maxWidth > 0 && width > c.maxWidth {
		width = c.maxWidth
	}
	return width
}

// Get returns a PNG preview of the image at path, at most width pixels wide.
func (c *ThumbCache) Get(path string, width int) ([]byte, error) {
	if width < 1 {
		return nil, ErrBadWidth
	}
	width = c.normalize(width)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := thumbKey{path: path, width: width}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && e.modTime.Equal(info.ModTime()) && time.Since(e.fetched) < c.ttl {
		return e.data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := renderThumbnail(f, width)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", path, err)
	}

	c.mu.Lock()
	c.sweepLocked()
	c.entries[key] = thumbEntry{data: data, modTime: info.ModTime(), fetched: time.Now()}
	c.mu.Unlock()
	return data, nil
}

// Invalidate drops every cached size of path.
func (c *ThumbCache) Invalidate(path string) {
	c.mu.Lock()
	for k := range c.entries {
		if k.path == path {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of cached previews.
func (c *ThumbCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ThumbCache) sweepLocked() {
	for k, e := range c.entries {
		if time.Since(e.fetched) >= c.ttl {
			delete(c.entries, k)
		}
	}
}

// renderThumbnail decodes an image and scales it down to width, keeping the
// aspect ratio. Narrower images are re-encoded at their own size.
func renderThumbnail(src io.Reader, width int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > width {
		newH := h * width / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
