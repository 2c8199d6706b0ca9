// Package scene draws the stair scene: a loaded model that climbs a flight
// of stairs onto a fenced platform, lit by a switchable light.
package scene

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/stairscene/internal/engine/camera"
	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/internal/engine/lighting"
	"github.com/Faultbox/stairscene/internal/engine/model"
	"github.com/Faultbox/stairscene/internal/engine/texture"
	"github.com/Faultbox/stairscene/internal/logger"
)

// Model is the loaded 3D model drawn on the stairs.
type Model interface {
	Load() error
	Initialize() error
	Draw(ctx gfx.Context)
	Dispose()
}

// Config describes what a World loads.
type Config struct {
	ModelDir  string
	ModelFile string

	// TexturePaths are indexed by TextureSlot.
	TexturePaths   [textureSlots]string
	MaxTextureSize int

	Distance float32
	// Pause is how long the last climb frame is held.
	Pause time.Duration

	// Sleep blocks for the completion pause. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// OpenModel creates the model collaborator. Defaults to model.Open.
	OpenModel func(dir, file string) Model
	// LoadTexture decodes a texture file. Defaults to texture.Load.
	LoadTexture func(path string, maxSize int) (*image.RGBA, error)
}

func (c *Config) withDefaults() {
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	if c.OpenModel == nil {
		c.OpenModel = func(dir, file string) Model { return model.Open(dir, file) }
	}
	if c.LoadTexture == nil {
		c.LoadTexture = texture.Load
	}
	if c.Distance == 0 {
		c.Distance = camera.DefaultDistance
	}
}

// World is one loaded model with its scene state and textures.
//
// NewWorld does all file work; Initialize uploads to the graphics context.
// A World is used from the render thread only.
type World struct {
	cfg    Config
	state  *State
	layout Layout
	model  Model

	images   [textureSlots]*image.RGBA
	textures [textureSlots]gfx.Texture

	width, height int
	disposed      bool
	log           *zap.Logger
}

// NewWorld loads the textures and the model named by cfg.
func NewWorld(cfg Config) (*World, error) {
	cfg.withDefaults()

	w := &World{
		cfg:    cfg,
		state:  NewState(cfg.Distance),
		layout: DefaultLayout(),
		log:    logger.Named("scene"),
	}

	for slot := TextureSlot(0); slot < textureSlots; slot++ {
		img, err := cfg.LoadTexture(cfg.TexturePaths[slot], cfg.MaxTextureSize)
		if err != nil {
			return nil, fmt.Errorf("loading %s texture: %w", slot, err)
		}
		w.images[slot] = img
	}

	w.model = cfg.OpenModel(cfg.ModelDir, cfg.ModelFile)
	if err := w.model.Load(); err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	w.log.Info("world loaded",
		zap.String("dir", cfg.ModelDir),
		zap.String("file", cfg.ModelFile))
	return w, nil
}

// State returns the world's scene state.
func (w *World) State() *State { return w.state }

// ModelFile returns the loaded model's directory and file name.
func (w *World) ModelFile() (dir, file string) {
	return w.cfg.ModelDir, w.cfg.ModelFile
}

// Initialize sets up fixed GL state and lights, uploads the textures and
// prepares the model.
func (w *World) Initialize(ctx gfx.Context) error {
	ctx.ClearColor(0, 0, 0, 1)
	ctx.SmoothShading()
	ctx.Enable(gfx.DepthTest)
	ctx.Enable(gfx.CullFace)
	ctx.FrontFaceCW()

	lighting.Setup(ctx)

	ctx.Enable(gfx.ColorMaterial)
	ctx.ColorMaterialAmbientDiffuse()
	ctx.Enable(gfx.Lighting)
	ctx.Enable(gfx.Normalize)
	ctx.Enable(gfx.Texture2D)

	opts := gfx.TextureOptions{
		MinFilter: gfx.Nearest,
		MagFilter: gfx.Nearest,
		Repeat:    true,
		Mipmaps:   true,
		EnvMode:   gfx.Add,
	}
	for slot, img := range w.images {
		w.textures[slot] = ctx.UploadTexture(img, opts)
	}

	if err := w.model.Initialize(); err != nil {
		return fmt.Errorf("initializing model: %w", err)
	}
	return nil
}

// Resize sets the viewport and a 50 degree perspective projection.
func (w *World) Resize(ctx gfx.Context, width, height int) {
	w.width, w.height = width, height

	ctx.Viewport(0, 0, width, height)
	ctx.MatrixMode(gfx.Projection)
	ctx.LoadIdentity()
	ctx.MultMatrix(camera.Projection(width, height))
	ctx.MatrixMode(gfx.ModelView)
	ctx.LoadIdentity()
}

// Draw advances the climb by one frame and draws the scene.
func (w *World) Draw(ctx gfx.Context) {
	ctx.Clear()
	ctx.Viewport(0, 0, w.width, w.height)
	ctx.LoadIdentity()

	w.state.Camera().Apply(ctx)
	ctx.Enable(gfx.PointSmooth)
	w.state.clamp()

	climb, climbing := w.state.Step(func() {
		w.log.Debug("climb complete", zap.Duration("pause", w.cfg.Pause))
		w.cfg.Sleep(w.cfg.Pause)
	})

	h := float32(w.state.StairHeight())
	for _, c := range w.layout {
		switch c.Op {
		case OpPush:
			ctx.PushMatrix()
		case OpPop:
			ctx.PopMatrix()
		case OpTranslate:
			ctx.Translate(c.Args[0], c.Args[1], c.Args[2])
		case OpRotate:
			ctx.Rotate(c.Args[0], c.Args[1], c.Args[2], c.Args[3])
		case OpScale:
			ctx.Scale(c.Args[0], c.Args[1], c.Args[2])
		case OpColor:
			ctx.Color(c.Args[0], c.Args[1], c.Args[2])
		case OpBind:
			ctx.BindTexture(w.textures[c.Slot])
		case OpTexEnv:
			ctx.TexEnv(c.Env)
		case OpTexMinFilter:
			ctx.TexMinFilter(c.Flt)
		case OpMatrixMode:
			ctx.MatrixMode(c.Mode)
		case OpLoadIdentity:
			ctx.LoadIdentity()
		case OpCube:
			ctx.Quads(unitCube)
		case OpGround:
			ctx.Quads(groundQuad)
		case OpModel:
			w.model.Draw(ctx)
		case OpClimb:
			if climbing {
				ctx.Translate(climb.X, climb.Y, climb.Z)
			}
		case OpStairScale:
			ctx.Scale(1, 1, h+1)
			ctx.Translate(0, 0, -h*14)
		}
	}

	ctx.Viewport(0, 0, w.width, w.height)
	ctx.Flush()
}

// CycleLight switches to the next light mode and applies it immediately.
func (w *World) CycleLight(ctx gfx.Context) lighting.Mode {
	m := w.state.CycleLight()
	lighting.Apply(ctx, m)
	w.log.Debug("light mode", zap.Stringer("mode", m))
	return m
}

// Dispose releases the textures and the model. Later calls do nothing.
func (w *World) Dispose(ctx gfx.Context) {
	if w.disposed {
		return
	}
	w.disposed = true

	var ts []gfx.Texture
	for _, t := range w.textures {
		if t != 0 {
			ts = append(ts, t)
		}
	}
	if len(ts) > 0 {
		ctx.DeleteTextures(ts)
	}
	w.textures = [textureSlots]gfx.Texture{}
	w.model.Dispose()
}
