// Package lighting holds the scene's fixed-function light presets.
package lighting

import (
	"fmt"

	"github.com/Faultbox/stairscene/internal/engine/gfx"
)

// Mode selects one of the four colour presets for light 0.
type Mode int

// Light modes in cycle order.
const (
	Yellow Mode = iota
	Red
	Green
	Blue

	modeCount
)

var modeNames = [...]string{"yellow", "red", "green", "blue"}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode after m, wrapping from Blue to Yellow.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Setting is one light parameter assignment.
type Setting struct {
	Param  gfx.LightParam
	Values []float32
}

// Preset is an ordered list of light 0 settings.
type Preset []Setting

var (
	lightPosition = []float32{150, 150, -45, 1}
	yellowGreen   = []float32{0.576471, 0.858824, 0.439216, 1}
	fullCutoff    = []float32{180}
)

// presets are issued in exactly this order; Yellow sets the cutoff last.
var presets = [modeCount]Preset{
	Yellow: {
		{gfx.Position, lightPosition},
		{gfx.Ambient, yellowGreen},
		{gfx.SpotCutoff, fullCutoff},
	},
	Red: {
		{gfx.SpotCutoff, fullCutoff},
		{gfx.Position, lightPosition},
		{gfx.Ambient, []float32{1, 0, 0, 1}},
	},
	Green: {
		{gfx.SpotCutoff, fullCutoff},
		{gfx.Position, lightPosition},
		{gfx.Ambient, []float32{0, 1, 0, 1}},
	},
	Blue: {
		{gfx.SpotCutoff, fullCutoff},
		{gfx.Position, lightPosition},
		{gfx.Ambient, []float32{0, 0, 1, 1}},
		{gfx.Diffuse, []float32{0, 0, 1, 1}},
		{gfx.Specular, []float32{0, 0, 1, 1}},
	},
}

// PresetFor returns the settings issued for m.
func PresetFor(m Mode) Preset {
	if m < 0 || m >= modeCount {
		return nil
	}
	return presets[m]
}

// Apply issues the preset for m on light 0 and enables it.
func Apply(ctx gfx.Context, m Mode) {
	for _, s := range PresetFor(m) {
		ctx.Light(gfx.Light0, s.Param, s.Values...)
	}
	ctx.Enable(gfx.Light0Cap)
}

// Setup issues the initial state of both lights: light 0 as a white-specular
// yellow-green point light and light 1 as a red spotlight behind the scene.
func Setup(ctx gfx.Context) {
	ctx.Light(gfx.Light0, gfx.Position, lightPosition...)
	ctx.Light(gfx.Light0, gfx.Ambient, yellowGreen...)
	ctx.Light(gfx.Light0, gfx.Diffuse, yellowGreen...)
	ctx.Light(gfx.Light0, gfx.Specular, 1, 1, 1, 1)
	ctx.Light(gfx.Light0, gfx.SpotCutoff, fullCutoff...)
	ctx.Enable(gfx.Light0Cap)

	ctx.Light(gfx.Light1, gfx.Position, 40, 1550, -5050, 1)
	ctx.Light(gfx.Light1, gfx.SpotDirection, 40, 43, -5050, 0)
	ctx.Light(gfx.Light1, gfx.Specular, 1, 0, 0, 1)
	ctx.Light(gfx.Light1, gfx.Diffuse, 1, 0, 0, 1)
	ctx.Light(gfx.Light1, gfx.Ambient, 1, 0, 0, 1)
	ctx.Light(gfx.Light1, gfx.SpotCutoff, 40)
	ctx.Enable(gfx.Light1Cap)
}
