// Package app runs the stair scene viewer: window, input dispatch, model
// reloading and frame pacing.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/stairscene/internal/assets"
	"github.com/Faultbox/stairscene/internal/config"
	"github.com/Faultbox/stairscene/internal/engine/input"
	"github.com/Faultbox/stairscene/internal/engine/renderer"
	"github.com/Faultbox/stairscene/internal/engine/scene"
	"github.com/Faultbox/stairscene/internal/engine/screenshot"
	"github.com/Faultbox/stairscene/internal/engine/texture"
	"github.com/Faultbox/stairscene/internal/engine/window"
	"github.com/Faultbox/stairscene/internal/logger"
)

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	ctrl     *Controller
	log      *zap.Logger
}

// WorldConfig builds the scene configuration for a model file. Textures
// are read through cache when it is non-nil.
func WorldConfig(cfg *config.Config, cache *assets.TextureCache, dir, file string) scene.Config {
	t := cfg.Scene.Textures
	sc := scene.Config{
		ModelDir:  dir,
		ModelFile: file,
		TexturePaths: [4]string{
			scene.FloorTexture:    cfg.TexturePath(t.Floor),
			scene.StairsTexture:   cfg.TexturePath(t.Stairs),
			scene.PedestalTexture: cfg.TexturePath(t.Pedestal),
			scene.PlatformTexture: cfg.TexturePath(t.Platform),
		},
		MaxTextureSize: cfg.Graphics.MaxTextureSize,
		Distance:       cfg.Camera.Distance,
		Pause:          cfg.Animation.CompletionPause,
	}
	if cache != nil {
		sc.LoadTexture = cache.Load
	}
	return sc
}

// New opens the window and loads the configured model.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Named("app")}

	textures := assets.NewTextureCache(texture.Load)

	// Load before any window exists so a bad model fails fast.
	world, err := scene.NewWorld(WorldConfig(cfg, textures, cfg.Scene.ModelDir, cfg.Scene.ModelFile))
	if err != nil {
		return nil, err
	}

	keymap, err := input.NewKeymap(cfg.Controls.Bindings)
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}

	a.window, err = window.New(window.Config{
		Title:      "StairScene",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context created by the window.
	a.renderer, err = renderer.New()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	shots := screenshot.New(cfg.Screenshots.Dir, cfg.Screenshots.Prefix)

	a.ctrl, err = NewController(world, Deps{
		Context: a.renderer,
		Keymap:  keymap,
		OpenWorld: func(dir, file string) (*scene.World, error) {
			return scene.NewWorld(WorldConfig(cfg, textures, dir, file))
		},
		PickModel: pickModel,
		Notify:    ShowError,
		Capture: func() (string, error) {
			w, h := a.window.GetSize()
			return shots.FromPixels(a.renderer.ReadPixels(w, h), w, h)
		},
		SetTitle:     a.window.SetTitle,
		DrawableSize: a.window.GetSize,
		Reloaded: func(dir, file string) {
			a.remember(dir, file)
			hits, misses := textures.Stats()
			a.log.Debug("texture cache",
				zap.Int("images", textures.Len()),
				zap.Int("hits", hits),
				zap.Int("misses", misses))
		},
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.ctrl.Resize(a.window.GetSize())

	a.log.Info("viewer initialized")
	return a, nil
}

// remember stores the reloaded model as the one to open next time.
func (a *App) remember(dir, file string) {
	a.cfg.Scene.ModelDir = dir
	a.cfg.Scene.ModelFile = file
	if err := a.cfg.Save(); err != nil {
		a.log.Warn("failed to save config", zap.String("model", a.cfg.ModelPath()), zap.Error(err))
		return
	}
	a.log.Info("model remembered", zap.String("model", a.cfg.ModelPath()))
}

// Run processes input and draws until the user quits.
func (a *App) Run() error {
	var frameDur time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameDur = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop", zap.Duration("frame", frameDur))

	for {
		start := time.Now()

		closed := a.input.Update()
		for _, ev := range a.input.Events() {
			running, err := a.ctrl.HandleEvent(ev)
			if err != nil {
				return err
			}
			if !running {
				return nil
			}
		}
		if closed {
			return nil
		}

		a.ctrl.Frame()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if elapsed := time.Since(start); elapsed < frameDur {
			time.Sleep(frameDur - elapsed)
		}
	}
}

// Close releases the world, GL resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.ctrl != nil && a.renderer != nil {
		a.ctrl.World().Dispose(a.renderer)
	}
	if a.input != nil {
		a.input.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
