package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/internal/engine/input"
	"github.com/Faultbox/stairscene/internal/engine/scene"
	"github.com/Faultbox/stairscene/internal/logger"
)

// Camera steps per key press.
const (
	RotateStep = 5
	ZoomStep   = 50
)

// ErrPickCancelled is returned by a model picker when the user closes the
// dialog without choosing a file.
var ErrPickCancelled = errors.New("model selection cancelled")

// Deps are the controller's collaborators.
type Deps struct {
	Context gfx.Context
	Keymap  *input.Keymap

	// OpenWorld loads a world for dir/file without touching the context.
	OpenWorld func(dir, file string) (*scene.World, error)
	// PickModel asks for a model file, starting in dir.
	PickModel func(dir string) (string, error)
	// Notify shows an error to the user.
	Notify func(title, message string)
	// Capture writes a screenshot and returns its path.
	Capture func() (string, error)
	// SetTitle updates the window title.
	SetTitle func(title string)
	// DrawableSize reports the drawable size in pixels. Resize events carry
	// the window size, which differs on high-density displays.
	DrawableSize func() (width, height int)
	// Reloaded is told about every model that replaced the previous one.
	Reloaded func(dir, file string)
}

// Controller routes input to the current world and draws it each frame.
type Controller struct {
	deps  Deps
	world *scene.World

	height *NumericField
	speed  *NumericField
	focus  *NumericField

	width, heightPx int
	title           string
	log             *zap.Logger
}

// NewController initializes world against the context and takes ownership.
func NewController(world *scene.World, deps Deps) (*Controller, error) {
	c := &Controller{
		deps: deps,
		log:  logger.Named("controller"),
	}
	if err := world.Initialize(deps.Context); err != nil {
		return nil, fmt.Errorf("initializing world: %w", err)
	}
	c.adopt(world)
	return c, nil
}

// World returns the current world.
func (c *Controller) World() *scene.World { return c.world }

// Fields returns the stair height and speed fields.
func (c *Controller) Fields() (height, speed *NumericField) { return c.height, c.speed }

// Focused returns the field receiving text, or nil.
func (c *Controller) Focused() *NumericField { return c.focus }

func (c *Controller) adopt(w *scene.World) {
	c.world = w
	s := w.State()
	c.height = NewNumericField("height", s.StairHeight())
	c.speed = NewNumericField("speed", s.Speed())
	c.focus = nil
	if c.width > 0 && c.heightPx > 0 {
		w.Resize(c.deps.Context, c.width, c.heightPx)
	}
}

// Resize forwards a new drawable size to the world.
func (c *Controller) Resize(width, height int) {
	c.width, c.heightPx = width, height
	c.world.Resize(c.deps.Context, width, height)
}

// HandleEvent applies one input event. It returns false when the viewer
// should quit, and an error only when a reload left no usable world.
func (c *Controller) HandleEvent(ev input.Event) (bool, error) {
	switch ev.Type {
	case input.EventQuit:
		return false, nil
	case input.EventWindowResize:
		if c.deps.DrawableSize != nil {
			c.Resize(c.deps.DrawableSize())
		} else {
			c.Resize(ev.Width, ev.Height)
		}
	case input.EventText:
		c.insertText(ev.Text)
	case input.EventKeyDown:
		return c.handleAction(c.deps.Keymap.Lookup(ev.Key), ev.Repeat)
	}
	return true, nil
}

func (c *Controller) handleAction(a input.Action, repeat bool) (bool, error) {
	s := c.world.State()

	switch a {
	case input.ActionQuit:
		return false, nil
	case input.ActionRotateXUp:
		s.RotateX(RotateStep)
	case input.ActionRotateXDown:
		s.RotateX(-RotateStep)
	case input.ActionRotateYLeft:
		s.RotateY(-RotateStep)
	case input.ActionRotateYRight:
		s.RotateY(RotateStep)
	case input.ActionZoomOut:
		s.Zoom(ZoomStep)
	case input.ActionZoomIn:
		s.Zoom(-ZoomStep)
	case input.ActionClimb:
		if s.StartClimb() {
			c.setFieldsEnabled(false)
			c.log.Debug("climb started", zap.Int("height", s.StairHeight()))
		}
	case input.ActionCycleLight:
		c.world.CycleLight(c.deps.Context)
	case input.ActionNextField:
		c.nextField()
	case input.ActionErase:
		if s.Animating() {
			break
		}
		if c.focus != nil && c.focus.Erase() {
			c.commitFields()
		}
	case input.ActionOpenModel:
		if !repeat {
			if err := c.reload(); err != nil {
				return false, err
			}
		}
	case input.ActionScreenshot:
		if !repeat {
			c.screenshot()
		}
	}
	return true, nil
}

func (c *Controller) nextField() {
	switch c.focus {
	case nil:
		c.focus = c.height
	case c.height:
		c.focus = c.speed
	default:
		c.focus = nil
	}
}

func (c *Controller) insertText(text string) {
	if c.world.State().Animating() {
		return
	}
	if c.focus != nil && c.focus.Insert(text) {
		c.commitFields()
	}
}

// commitFields re-reads both fields into the scene state.
func (c *Controller) commitFields() {
	s := c.world.State()
	s.SetStairHeight(c.height.Value())
	s.SetSpeed(c.speed.Value())
}

// reload swaps in a user-chosen model. A world that fails to load is
// reported and the current one kept; the current world is disposed only
// once its replacement has loaded.
func (c *Controller) reload() error {
	if c.deps.PickModel == nil || c.deps.OpenWorld == nil {
		return nil
	}
	dir, _ := c.world.ModelFile()

	path, err := c.deps.PickModel(dir)
	if errors.Is(err, ErrPickCancelled) {
		return nil
	}
	if err != nil {
		c.notify("Open model", err)
		return nil
	}

	next, err := c.deps.OpenWorld(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		c.log.Warn("reload failed, keeping current model", zap.String("path", path), zap.Error(err))
		c.notify("Open model", err)
		return nil
	}

	c.world.Dispose(c.deps.Context)
	if err := next.Initialize(c.deps.Context); err != nil {
		next.Dispose(c.deps.Context)
		return fmt.Errorf("initializing %s: %w", path, err)
	}
	c.adopt(next)
	c.log.Info("model reloaded", zap.String("path", path))
	if c.deps.Reloaded != nil {
		c.deps.Reloaded(next.ModelFile())
	}
	return nil
}

func (c *Controller) screenshot() {
	if c.deps.Capture == nil {
		return
	}
	path, err := c.deps.Capture()
	if err != nil {
		c.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	c.log.Info("screenshot saved", zap.String("path", path))
}

func (c *Controller) notify(title string, err error) {
	if c.deps.Notify != nil {
		c.deps.Notify(title, err.Error())
	}
}

// Frame draws one frame and refreshes field and title state.
func (c *Controller) Frame() {
	c.world.Draw(c.deps.Context)

	c.setFieldsEnabled(!c.world.State().Animating())

	if t := c.Title(); t != c.title {
		c.title = t
		if c.deps.SetTitle != nil {
			c.deps.SetTitle(t)
		}
	}
}

func (c *Controller) setFieldsEnabled(on bool) {
	c.height.SetEnabled(on)
	c.speed.SetEnabled(on)
}

// Title renders the status line shown in the window title.
func (c *Controller) Title() string {
	s := c.world.State()
	_, file := c.world.ModelFile()

	var b strings.Builder
	fmt.Fprintf(&b, "StairScene - %s | light: %s | %s %s",
		file, s.LightMode(), c.fieldStatus(c.height), c.fieldStatus(c.speed))
	if s.Animating() {
		fmt.Fprintf(&b, " | %s", s.Phase())
	}
	return b.String()
}

func (c *Controller) fieldStatus(f *NumericField) string {
	if f == c.focus {
		return fmt.Sprintf("%s: [%s]", f.Label, f.Text())
	}
	return fmt.Sprintf("%s: %s", f.Label, f.Text())
}
