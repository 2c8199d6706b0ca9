package scene

import (
	"fmt"

	"github.com/Faultbox/stairscene/internal/engine/gfx"
)

// TextureSlot names one of the scene's four textures.
type TextureSlot int

const (
	FloorTexture TextureSlot = iota
	StairsTexture
	PedestalTexture
	PlatformTexture

	textureSlots
)

var slotNames = [...]string{"floor", "stairs", "pedestal", "platform"}

func (s TextureSlot) String() string {
	if s < 0 || s >= textureSlots {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// OpKind is a layout command.
type OpKind int

const (
	OpPush OpKind = iota
	OpPop
	OpTranslate
	OpRotate
	OpScale
	OpColor
	OpBind
	OpTexEnv
	OpTexMinFilter
	OpMatrixMode
	OpLoadIdentity
	OpCube
	OpGround
	OpModel
	// OpClimb applies the frame's climb translation, if any.
	OpClimb
	// OpStairScale stretches the model by the stair height h:
	// scale (1, 1, h+1) then translate (0, 0, -14h).
	OpStairScale
)

// Command is one entry of the scene layout.
type Command struct {
	Op   OpKind
	Args [4]float32
	Slot TextureSlot
	Mode gfx.MatrixMode
	Env  gfx.TexEnvMode
	Flt  gfx.Filter
}

// Layout is the ordered draw program for the fixed scene.
type Layout []Command

func push() Command { return Command{Op: OpPush} }
func pop() Command  { return Command{Op: OpPop} }
func translate(x, y, z float32) Command {
	return Command{Op: OpTranslate, Args: [4]float32{x, y, z}}
}
func rotate(a, x, y, z float32) Command {
	return Command{Op: OpRotate, Args: [4]float32{a, x, y, z}}
}
func scale(x, y, z float32) Command {
	return Command{Op: OpScale, Args: [4]float32{x, y, z}}
}
func color(r, g, b float32) Command {
	return Command{Op: OpColor, Args: [4]float32{r, g, b}}
}
func bind(s TextureSlot) Command          { return Command{Op: OpBind, Slot: s} }
func texEnv(m gfx.TexEnvMode) Command     { return Command{Op: OpTexEnv, Env: m} }
func minFilter(f gfx.Filter) Command      { return Command{Op: OpTexMinFilter, Flt: f} }
func matrixMode(m gfx.MatrixMode) Command { return Command{Op: OpMatrixMode, Mode: m} }

// box draws a unit cube translated then scaled, inside its own push/pop.
func box(tx, ty, tz, sx, sy, sz float32) []Command {
	return []Command{push(), translate(tx, ty, tz), scale(sx, sy, sz), {Op: OpCube}, pop()}
}

// Stair geometry: StairSteps cubes climbing StairRise up and StairRun
// forward per step.
const (
	StairSteps = 13
	StairRise  = 16
	StairRun   = 4
)

func stairs() []Command {
	var cmds []Command
	for i := 0; i < StairSteps; i++ {
		cmds = append(cmds, box(17, float32(6+StairRise*i), float32(10+StairRun*i), 20, 8, -7)...)
	}
	return cmds
}

func stairFence(x float32) []Command {
	cmds := []Command{
		push(),
		bind(PedestalTexture),
		color(0.59, 0.41, 0.31),
		translate(x, 10, -10),
		rotate(14, 1, 0, 0),
	}
	cmds = append(cmds, box(17, 65, 10, 8, 160, -15)...)
	return append(cmds, pop())
}

func build(groups ...[]Command) Layout {
	var l Layout
	for _, g := range groups {
		l = append(l, g...)
	}
	return l
}

// DefaultLayout returns the stair scene: the climbing model, the pillar,
// the fenced platform over the tiled floor, two flights of stairs and
// three stair fences. Every group is balanced by push/pop.
func DefaultLayout() Layout {
	return build(
		// Model.
		[]Command{
			push(),
			{Op: OpClimb},
			color(0.196078, 0.196078, 0.8),
			translate(25, 43, -50),
			rotate(90, 1, 0, 0),
			push(),
			bind(PlatformTexture),
			texEnv(gfx.Modulate),
			{Op: OpStairScale},
			{Op: OpModel},
			pop(),
			pop(),
		},

		// Pillar.
		[]Command{push(), bind(PlatformTexture), color(0.55, 0.09, 0.09)},
		[]Command{push(), color(0.90, 0.91, 0.98), translate(0, 50, 120), scale(48, 140, -48), {Op: OpCube}, pop()},
		[]Command{pop()},

		// Platform with fences, then the floor.
		[]Command{push(), bind(PedestalTexture), color(0.5, 1.5, 0.5)},
		[]Command{color(0.96, 0.80, 0.69)},
		box(0, 195, 120, 60, 10, -60),
		[]Command{color(0.59, 0.41, 0.31)},
		box(-55, 215, 110, 5, 15, -65),
		box(55, 215, 110, 5, 15, -65),
		box(0, 215, 172, 60, 15, -7),
		[]Command{
			push(),
			color(0.196078, 0.196078, 0.8),
			matrixMode(gfx.TextureMatrix),
			bind(FloorTexture),
			minFilter(gfx.Linear),
			texEnv(gfx.Modulate),
			{Op: OpLoadIdentity},
			push(),
			scale(10, 10, 10),
			{Op: OpGround},
			matrixMode(gfx.TextureMatrix),
			pop(),
			matrixMode(gfx.ModelView),
			pop(),
		},
		[]Command{pop()},

		// Stairs.
		[]Command{push(), bind(StairsTexture), color(0.137255, 0.419608, 0.556863), translate(10, 0, 0)},
		stairs(),
		[]Command{pop()},
		[]Command{push(), bind(StairsTexture), translate(-45, 0, 0)},
		stairs(),
		[]Command{pop()},

		stairFence(36),
		stairFence(-18),
		stairFence(-70),
	)
}
