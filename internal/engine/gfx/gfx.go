// Package gfx defines the fixed-function graphics command set the scene is
// drawn with, independent of the OpenGL binding that executes it.
package gfx

import (
	"image"

	"github.com/Faultbox/stairscene/pkg/math"
)

// MatrixMode selects the matrix stack transforms apply to.
type MatrixMode int

const (
	ModelView MatrixMode = iota
	Projection
	TextureMatrix
)

// Capability is a server-side state toggled with Enable.
type Capability int

const (
	DepthTest Capability = iota
	CullFace
	Lighting
	Light0Cap
	Light1Cap
	ColorMaterial
	Normalize
	Texture2D
	PointSmooth
)

// TexEnvMode is how a texture combines with the lit fragment colour.
type TexEnvMode int

const (
	Modulate TexEnvMode = iota
	Add
)

// Filter is a texture minification/magnification filter.
type Filter int

const (
	Nearest Filter = iota
	Linear
)

// LightID names one of the fixed-function lights.
type LightID int

const (
	Light0 LightID = iota
	Light1
)

// LightParam is a light parameter set with Light.
type LightParam int

const (
	Position LightParam = iota
	Ambient
	Diffuse
	Specular
	SpotDirection
	SpotCutoff
)

var lightParamNames = [...]string{"position", "ambient", "diffuse", "specular", "spot_direction", "spot_cutoff"}

func (p LightParam) String() string {
	if int(p) < len(lightParamNames) {
		return lightParamNames[p]
	}
	return "unknown"
}

// Texture is a texture object handle. Zero means no texture.
type Texture uint32

// Vertex is one immediate-mode vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// TextureOptions describe how an uploaded image is sampled.
type TextureOptions struct {
	MinFilter Filter
	MagFilter Filter
	Repeat    bool
	Mipmaps   bool
	EnvMode   TexEnvMode
}

// Context is a stateful command sink in the style of the OpenGL 1.x/2.x
// fixed-function pipeline. It belongs to the render thread.
type Context interface {
	ClearColor(r, g, b, a float32)
	Clear()
	Viewport(x, y, width, height int)
	Flush()

	Enable(c Capability)
	SmoothShading()
	FrontFaceCW()
	ColorMaterialAmbientDiffuse()

	MatrixMode(mode MatrixMode)
	LoadIdentity()
	MultMatrix(m math.Mat4)
	PushMatrix()
	PopMatrix()
	Translate(x, y, z float32)
	Rotate(angleDeg, x, y, z float32)
	Scale(x, y, z float32)

	Color(r, g, b float32)
	BindTexture(t Texture)
	TexEnv(mode TexEnvMode)
	TexMinFilter(f Filter)
	UploadTexture(img *image.RGBA, opts TextureOptions) Texture
	DeleteTextures(ts []Texture)

	Light(id LightID, param LightParam, values ...float32)

	Quads(vs []Vertex)
	Triangles(vs []Vertex)
}
