package scene

import (
	"github.com/Faultbox/stairscene/internal/engine/camera"
	"github.com/Faultbox/stairscene/internal/engine/lighting"
	"github.com/Faultbox/stairscene/pkg/math"
)

// Phase is the stage of the climb animation.
type Phase int

const (
	Idle Phase = iota
	Rising
	Lifting
	Holding
	Complete
)

var phaseNames = [...]string{"idle", "rising", "lifting", "holding", "complete"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Climb animation constants. Progress advances by ProgressStep each frame;
// the model lifts by LiftStep per frame while Lifting.
const (
	ProgressStep = 5
	LiftStep     = 19

	liftStart = 50
	holdStart = 105
	climbEnd  = 170

	idleProgress = -1
	idleOffset   = -1
)

// State is everything the user can change about the scene: the camera,
// the stair height and speed fields, the climb animation and the light mode.
//
// Camera, height and speed mutators are rejected while the climb runs and
// report whether they took effect.
type State struct {
	cam *camera.OrbitCamera

	stairHeight int
	speed       int

	animating bool
	progress  float32
	offset    float32

	lightMode lighting.Mode
}

// NewState returns an idle state with the camera at distance.
func NewState(distance float32) *State {
	return &State{
		cam:       camera.NewOrbitCameraAt(distance),
		speed:     1,
		progress:  idleProgress,
		offset:    idleOffset,
		lightMode: lighting.Yellow,
	}
}

// Camera returns the scene camera.
func (s *State) Camera() *camera.OrbitCamera { return s.cam }

// RotationX returns the diagonal-axis rotation in degrees.
func (s *State) RotationX() float32 { return s.cam.RotationX }

// RotationY returns the vertical-axis rotation in degrees.
func (s *State) RotationY() float32 { return s.cam.RotationY }

// Distance returns the camera distance along the view axis.
func (s *State) Distance() float32 { return s.cam.Distance }

// StairHeight returns the committed stair height.
func (s *State) StairHeight() int { return s.stairHeight }

// Speed returns the committed climb speed.
func (s *State) Speed() int { return s.speed }

// Animating reports whether a climb is running.
func (s *State) Animating() bool { return s.animating }

// Progress returns the climb counter. It is negative while idle.
func (s *State) Progress() float32 { return s.progress }

// Offset returns the accumulated lift of the climb.
func (s *State) Offset() float32 { return s.offset }

// LightMode returns the active light preset.
func (s *State) LightMode() lighting.Mode { return s.lightMode }

// RotateX turns the scene about the diagonal axis by delta degrees.
func (s *State) RotateX(delta float32) bool {
	if s.animating {
		return false
	}
	s.cam.RotateX(delta)
	return true
}

// RotateY turns the scene about the vertical axis by delta degrees.
func (s *State) RotateY(delta float32) bool {
	if s.animating {
		return false
	}
	s.cam.RotateY(delta)
	return true
}

// Zoom changes the scene distance by delta.
func (s *State) Zoom(delta float32) bool {
	if s.animating {
		return false
	}
	s.cam.Zoom(delta)
	return true
}

// SetStairHeight sets the model's stair height.
func (s *State) SetStairHeight(h int) bool {
	if s.animating {
		return false
	}
	s.stairHeight = h
	return true
}

// SetSpeed stores the animation speed. It does not affect the climb.
func (s *State) SetSpeed(v int) bool {
	if s.animating {
		return false
	}
	s.speed = v
	return true
}

// StartClimb begins the climb from idle. It is a no-op while animating.
func (s *State) StartClimb() bool {
	if s.animating || s.progress != idleProgress {
		return false
	}
	s.progress = 0
	s.animating = true
	return true
}

// CycleLight advances the light mode. It is allowed during the climb.
func (s *State) CycleLight() lighting.Mode {
	s.lightMode = s.lightMode.Next()
	return s.lightMode
}

// Phase classifies the current progress.
func (s *State) Phase() Phase {
	switch p := s.progress; {
	case p < 0:
		return Idle
	case p < liftStart:
		return Rising
	case p < holdStart:
		return Lifting
	case p < climbEnd:
		return Holding
	default:
		return Complete
	}
}

// Step advances the climb by one frame and returns the translation to
// apply to the model this frame, computed from the values before the
// step. ok is false when no translation applies. Completing the climb
// calls pause before returning to idle.
func (s *State) Step(pause func()) (t math.Vec3, ok bool) {
	h := float32(s.stairHeight)

	switch s.Phase() {
	case Idle:
		return math.Vec3{}, false
	case Rising:
		t = math.V3(0, 0, s.progress)
	case Lifting:
		t = math.V3(0, s.offset+h, s.progress)
		s.offset += LiftStep
	case Holding:
		t = math.V3(0, s.offset+h, s.progress)
	case Complete:
		if pause != nil {
			pause()
		}
		s.progress = idleProgress
		s.offset = idleOffset
		s.animating = false
		return math.Vec3{}, false
	}

	s.progress += ProgressStep
	return t, true
}

// clamp re-applies the pitch limit, as done at the start of every frame.
func (s *State) clamp() {
	s.cam.Clamp()
}
