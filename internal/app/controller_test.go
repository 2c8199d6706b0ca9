package app

import (
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/stairscene/internal/config"
	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/internal/engine/input"
	"github.com/Faultbox/stairscene/internal/engine/lighting"
	"github.com/Faultbox/stairscene/internal/engine/scene"
)

type stubModel struct {
	name      string
	initErr   error
	disposed  bool
	disposals int
}

func (m *stubModel) Load() error          { return nil }
func (m *stubModel) Initialize() error    { return m.initErr }
func (m *stubModel) Draw(ctx gfx.Context) { ctx.Triangles(nil) }

func (m *stubModel) Dispose() {
	m.disposed = true
	m.disposals++
}

func newWorld(t *testing.T, dir, file string, m *stubModel) *scene.World {
	t.Helper()
	w, err := scene.NewWorld(scene.Config{
		ModelDir:  dir,
		ModelFile: file,
		Pause:     2 * time.Second,
		Sleep:     func(time.Duration) {},
		OpenModel: func(string, string) scene.Model { return m },
		LoadTexture: func(string, int) (*image.RGBA, error) {
			return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
		},
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

type harness struct {
	ctrl    *Controller
	rec     *gfx.Recorder
	model   *stubModel
	notices []string
	titles  []string
	picked  string
	pickErr error
	openErr error
	initErr error
	opened  *stubModel
	shots   int

	drawable [2]int
	reloaded []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	km, err := input.NewKeymap(config.DefaultBindings())
	if err != nil {
		t.Fatal(err)
	}

	h := &harness{rec: gfx.NewRecorder(), model: &stubModel{name: "first"}}
	h.ctrl, err = NewController(newWorld(t, "models", "first.glb", h.model), Deps{
		Context: h.rec,
		Keymap:  km,
		OpenWorld: func(dir, file string) (*scene.World, error) {
			if h.openErr != nil {
				return nil, h.openErr
			}
			h.opened = &stubModel{name: file, initErr: h.initErr}
			return newWorld(t, dir, file, h.opened), nil
		},
		PickModel: func(string) (string, error) { return h.picked, h.pickErr },
		Notify:    func(title, msg string) { h.notices = append(h.notices, msg) },
		Capture: func() (string, error) {
			h.shots++
			return "shot.png", nil
		},
		SetTitle: func(s string) { h.titles = append(h.titles, s) },
		DrawableSize: func() (int, int) {
			if h.drawable == [2]int{} {
				return 640, 480
			}
			return h.drawable[0], h.drawable[1]
		},
		Reloaded: func(dir, file string) { h.reloaded = append(h.reloaded, dir+"/"+file) },
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	h.ctrl.Resize(640, 480)
	return h
}

func (h *harness) key(t *testing.T, name string) bool {
	t.Helper()
	running, err := h.ctrl.HandleEvent(input.Event{Type: input.EventKeyDown, Key: name})
	if err != nil {
		t.Fatalf("key %s: %v", name, err)
	}
	return running
}

func (h *harness) text(t *testing.T, s string) {
	t.Helper()
	if _, err := h.ctrl.HandleEvent(input.Event{Type: input.EventText, Text: s}); err != nil {
		t.Fatal(err)
	}
}

func TestCameraKeys(t *testing.T) {
	h := newHarness(t)
	s := h.ctrl.World().State()

	for _, k := range []string{"E", "E", "D", "F", "S", "S", "Keypad +", "=", "-"} {
		h.key(t, k)
	}
	if s.RotationX() != 5 {
		t.Errorf("RotationX = %v, want 5", s.RotationX())
	}
	if s.RotationY() != 5 {
		t.Errorf("RotationY = %v, want 5", s.RotationY())
	}
	if s.Distance() != 5050 {
		t.Errorf("Distance = %v, want 5050", s.Distance())
	}
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t)
	if h.key(t, "Q") == false {
		t.Error("unbound key quit the viewer")
	}
	if h.key(t, "F4") {
		t.Error("F4 did not quit")
	}
	if running, _ := h.ctrl.HandleEvent(input.Event{Type: input.EventQuit}); running {
		t.Error("window close did not quit")
	}
}

func TestClimbLocksCameraAndFields(t *testing.T) {
	h := newHarness(t)
	s := h.ctrl.World().State()

	h.key(t, "V")
	h.ctrl.Frame()
	if !s.Animating() {
		t.Fatal("climb did not start")
	}

	h.key(t, "E")
	h.key(t, "Keypad -")
	if s.RotationX() != 0 || s.Distance() != 5000 {
		t.Error("camera moved during climb")
	}

	height, speed := h.ctrl.Fields()
	if height.Enabled() || speed.Enabled() {
		t.Error("fields editable during climb")
	}
	h.key(t, "Tab")
	h.text(t, "7")
	if s.StairHeight() != 0 {
		t.Errorf("StairHeight = %d during climb", s.StairHeight())
	}

	for s.Animating() {
		h.ctrl.Frame()
	}
	h.ctrl.Frame()
	if !height.Enabled() {
		t.Error("fields still locked after climb")
	}
}

func TestClimbLocksFieldsBeforeFrame(t *testing.T) {
	tests := []struct {
		name  string
		input func(t *testing.T, h *harness)
	}{
		{name: "text", input: func(t *testing.T, h *harness) { h.text(t, "7") }},
		{name: "erase", input: func(t *testing.T, h *harness) { h.key(t, "Backspace") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			s := h.ctrl.World().State()
			height, _ := h.ctrl.Fields()

			h.key(t, "Tab")
			h.text(t, "3")
			h.key(t, "V")
			tt.input(t, h)

			if height.Enabled() {
				t.Error("field editable right after climb key")
			}
			if height.Text() != "3" {
				t.Errorf("field text = %q, want 3", height.Text())
			}
			if s.StairHeight() != 3 {
				t.Errorf("StairHeight = %d, want 3", s.StairHeight())
			}

			h.ctrl.Frame()
			if got := h.titles[len(h.titles)-1]; !strings.Contains(got, "height: [3]") {
				t.Errorf("title = %q", got)
			}
		})
	}
}

func TestFieldEditing(t *testing.T) {
	h := newHarness(t)
	s := h.ctrl.World().State()

	h.key(t, "Tab")
	h.text(t, "1x２")
	if s.StairHeight() != 12 {
		t.Errorf("StairHeight = %d, want 12", s.StairHeight())
	}
	h.key(t, "Backspace")
	if s.StairHeight() != 1 {
		t.Errorf("StairHeight after erase = %d, want 1", s.StairHeight())
	}

	h.key(t, "Tab")
	h.text(t, "5")
	if s.Speed() != 15 {
		t.Errorf("Speed = %d, want 15", s.Speed())
	}

	h.key(t, "Tab")
	if h.ctrl.Focused() != nil {
		t.Error("third Tab should leave the fields")
	}
	h.text(t, "9")
	if s.StairHeight() != 1 || s.Speed() != 15 {
		t.Error("unfocused text changed a field")
	}
}

func TestCycleLightKey(t *testing.T) {
	h := newHarness(t)
	h.key(t, "V")
	h.key(t, "M")
	if m := h.ctrl.World().State().LightMode(); m != lighting.Red {
		t.Errorf("LightMode = %v, want red", m)
	}
	if len(h.rec.Find("light0.ambient")) == 0 {
		t.Error("preset not applied")
	}
}

func TestReload(t *testing.T) {
	h := newHarness(t)
	h.ctrl.World().State().RotateY(30)
	h.picked = "/data/models/second.glb"

	h.key(t, "F2")

	if !h.model.disposed {
		t.Error("old model not disposed")
	}
	dir, file := h.ctrl.World().ModelFile()
	if dir != "/data/models" || file != "second.glb" {
		t.Errorf("world model = %s/%s", dir, file)
	}
	if h.ctrl.World().State().RotationY() != 0 {
		t.Error("state carried over to the new model")
	}
	if len(h.reloaded) != 1 || h.reloaded[0] != "/data/models/second.glb" {
		t.Errorf("reloaded = %v", h.reloaded)
	}
}

func TestReloadInitializeFailure(t *testing.T) {
	h := newHarness(t)
	h.picked = "/data/models/second.glb"
	h.initErr = errors.New("no buffers")

	running, err := h.ctrl.HandleEvent(input.Event{Type: input.EventKeyDown, Key: "F2"})
	if err == nil || !strings.Contains(err.Error(), "no buffers") {
		t.Fatalf("err = %v, want initialize failure", err)
	}
	if running {
		t.Error("viewer kept running without a usable model")
	}
	if h.opened == nil || h.opened.disposals != 1 {
		t.Error("replacement not disposed after failed initialize")
	}
	if len(h.reloaded) != 0 {
		t.Errorf("reloaded = %v", h.reloaded)
	}

	// Shutdown disposes the current world again.
	h.ctrl.World().Dispose(h.rec)
	if h.model.disposals != 1 {
		t.Errorf("old model disposed %d times, want 1", h.model.disposals)
	}
}

func TestReloadFailureKeepsWorld(t *testing.T) {
	h := newHarness(t)
	before := h.ctrl.World()
	before.State().RotateY(30)
	h.picked = "/data/models/broken.glb"
	h.openErr = errors.New("bad file")

	h.key(t, "F2")

	if h.ctrl.World() != before || h.model.disposed {
		t.Error("failed reload replaced the world")
	}
	if before.State().RotationY() != 30 {
		t.Error("failed reload reset state")
	}
	if len(h.notices) != 1 || !strings.Contains(h.notices[0], "bad file") {
		t.Errorf("notices = %v", h.notices)
	}
}

func TestReloadCancelled(t *testing.T) {
	h := newHarness(t)
	h.pickErr = ErrPickCancelled
	h.key(t, "F2")
	if len(h.notices) != 0 || h.opened != nil {
		t.Error("cancelled pick should do nothing")
	}
}

func TestScreenshotIgnoresRepeat(t *testing.T) {
	h := newHarness(t)
	h.key(t, "F12")
	h.ctrl.HandleEvent(input.Event{Type: input.EventKeyDown, Key: "F12", Repeat: true})
	if h.shots != 1 {
		t.Errorf("shots = %d, want 1", h.shots)
	}
}

func TestTitle(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Frame()
	if len(h.titles) != 1 {
		t.Fatalf("titles = %v", h.titles)
	}
	want := "StairScene - first.glb | light: yellow | height: 0 speed: 1"
	if h.titles[0] != want {
		t.Errorf("title = %q, want %q", h.titles[0], want)
	}

	h.ctrl.Frame()
	if len(h.titles) != 1 {
		t.Error("unchanged title set again")
	}

	h.key(t, "Tab")
	h.key(t, "V")
	h.ctrl.Frame()
	if got := h.titles[len(h.titles)-1]; !strings.Contains(got, "height: [0]") || !strings.HasSuffix(got, "| rising") {
		t.Errorf("title = %q", got)
	}
}

func TestResizeEvent(t *testing.T) {
	h := newHarness(t)
	h.ctrl.deps.DrawableSize = nil
	h.rec.ClearCalls()
	h.ctrl.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 300, Height: 200})
	vp := h.rec.Find("viewport")
	if len(vp) != 1 || vp[0].Args[2] != 300 || vp[0].Args[3] != 200 {
		t.Errorf("viewport calls = %+v", vp)
	}
}

func TestResizeUsesDrawableSize(t *testing.T) {
	h := newHarness(t)
	h.drawable = [2]int{1280, 960}
	h.rec.ClearCalls()

	h.ctrl.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 640, Height: 480})

	vp := h.rec.Find("viewport")
	if len(vp) != 1 || vp[0].Args[2] != 1280 || vp[0].Args[3] != 960 {
		t.Errorf("viewport calls = %+v, want drawable size", vp)
	}
}
