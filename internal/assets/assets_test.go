package assets

import (
	"errors"
	"image"
	"testing"
)

func countingLoader(calls *int, err error) Loader {
	return func(path string, maxSize int) (*image.RGBA, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return image.NewRGBA(image.Rect(0, 0, maxSize, maxSize)), nil
	}
}

func TestTextureCacheHit(t *testing.T) {
	calls := 0
	c := NewTextureCache(countingLoader(&calls, nil))

	a, err := c.Load("tiles.jpg", 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Load("tiles.jpg", 4)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second load returned a different image")
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d/%d, want 1/1", hits, misses)
	}
}

func TestTextureCacheKeysBySize(t *testing.T) {
	calls := 0
	c := NewTextureCache(countingLoader(&calls, nil))
	c.Load("tiles.jpg", 4)
	c.Load("tiles.jpg", 8)
	if calls != 2 || c.Len() != 2 {
		t.Errorf("calls = %d, len = %d, want 2/2", calls, c.Len())
	}
}

func TestTextureCacheErrorsNotCached(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	c := NewTextureCache(countingLoader(&calls, boom))

	for i := 0; i < 2; i++ {
		if _, err := c.Load("bad.jpg", 4); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
	}
	if calls != 2 || c.Len() != 0 {
		t.Errorf("calls = %d, len = %d", calls, c.Len())
	}
}
