// Package screenshot writes frame-buffer captures to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capturer names and writes screenshots.
type Capturer struct {
	dir    string
	prefix string

	// Now is the clock used for file names.
	Now func() time.Time
}

// New creates a capturer writing prefix_<timestamp>.png files into dir.
func New(dir, prefix string) *Capturer {
	return &Capturer{dir: dir, prefix: prefix, Now: time.Now}
}

// FromPixels saves bottom-up RGBA rows as read back from OpenGL.
func (c *Capturer) FromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return c.FromImage(img)
}

// FromImage saves img and returns the written path.
func (c *Capturer) FromImage(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := c.nextPath()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// nextPath returns an unused file name, adding a counter when two captures
// land in the same second.
func (c *Capturer) nextPath() string {
	stamp := c.Now().Format("2006-01-02_15-04-05")
	base := filepath.Join(c.dir, fmt.Sprintf("%s_%s", c.prefix, stamp))

	path := base + ".png"
	for n := 2; fileExists(path); n++ {
		path = fmt.Sprintf("%s_%d.png", base, n)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
