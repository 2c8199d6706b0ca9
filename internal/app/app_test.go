package app

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/Faultbox/stairscene/internal/assets"
	"github.com/Faultbox/stairscene/internal/config"
	"github.com/Faultbox/stairscene/internal/engine/scene"
)

func TestWorldConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.TextureDir = "tex"
	cfg.Animation.CompletionPause = 0

	sc := WorldConfig(cfg, nil, "models", "climber.glb")

	if sc.ModelDir != "models" || sc.ModelFile != "climber.glb" {
		t.Errorf("model = %s/%s", sc.ModelDir, sc.ModelFile)
	}
	if got, want := sc.TexturePaths[scene.StairsTexture], filepath.Join("tex", "metal.jpg"); got != want {
		t.Errorf("stairs texture = %q, want %q", got, want)
	}
	if sc.Distance != 5000 {
		t.Errorf("distance = %v", sc.Distance)
	}
	if sc.LoadTexture != nil {
		t.Error("no cache should leave the default loader")
	}
}

func TestWorldConfigUsesCache(t *testing.T) {
	calls := 0
	cache := assets.NewTextureCache(func(string, int) (*image.RGBA, error) {
		calls++
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})

	sc := WorldConfig(config.Default(), cache, "models", "a.glb")
	sc.OpenModel = func(string, string) scene.Model { return &stubModel{} }

	for i := 0; i < 2; i++ {
		if _, err := scene.NewWorld(sc); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 4 {
		t.Errorf("decoded %d textures for two worlds, want 4", calls)
	}
}
