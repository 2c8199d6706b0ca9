// Package renderer executes gfx commands on an OpenGL 2.1 compatibility
// context.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/internal/logger"
	"github.com/Faultbox/stairscene/pkg/math"
)

// Renderer implements gfx.Context with immediate-mode OpenGL calls.
type Renderer struct {
	textures map[gfx.Texture]struct{}
}

var _ gfx.Context = (*Renderer)(nil)

// New loads the OpenGL function pointers.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	return &Renderer{textures: make(map[gfx.Texture]struct{})}, nil
}

// Close deletes any textures still alive.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("textures", len(r.textures)))
	if len(r.textures) == 0 {
		return
	}
	ts := make([]gfx.Texture, 0, len(r.textures))
	for t := range r.textures {
		ts = append(ts, t)
	}
	r.DeleteTextures(ts)
}

// ReadPixels returns the RGBA back buffer, bottom row first.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func (r *Renderer) ClearColor(cr, cg, cb, ca float32) { gl.ClearColor(cr, cg, cb, ca) }
func (r *Renderer) Clear()                            { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }
func (r *Renderer) Flush()                            { gl.Flush() }

func (r *Renderer) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

var capabilities = map[gfx.Capability]uint32{
	gfx.DepthTest:     gl.DEPTH_TEST,
	gfx.CullFace:      gl.CULL_FACE,
	gfx.Lighting:      gl.LIGHTING,
	gfx.Light0Cap:     gl.LIGHT0,
	gfx.Light1Cap:     gl.LIGHT1,
	gfx.ColorMaterial: gl.COLOR_MATERIAL,
	gfx.Normalize:     gl.NORMALIZE,
	gfx.Texture2D:     gl.TEXTURE_2D,
	gfx.PointSmooth:   gl.POINT_SMOOTH,
}

func (r *Renderer) Enable(c gfx.Capability) {
	if glc, ok := capabilities[c]; ok {
		gl.Enable(glc)
	}
}

func (r *Renderer) SmoothShading() { gl.ShadeModel(gl.SMOOTH) }
func (r *Renderer) FrontFaceCW()   { gl.FrontFace(gl.CW) }

func (r *Renderer) ColorMaterialAmbientDiffuse() {
	gl.ColorMaterial(gl.FRONT, gl.AMBIENT_AND_DIFFUSE)
}

func (r *Renderer) MatrixMode(mode gfx.MatrixMode) {
	switch mode {
	case gfx.Projection:
		gl.MatrixMode(gl.PROJECTION)
	case gfx.TextureMatrix:
		gl.MatrixMode(gl.TEXTURE)
	default:
		gl.MatrixMode(gl.MODELVIEW)
	}
}

func (r *Renderer) LoadIdentity() { gl.LoadIdentity() }

func (r *Renderer) MultMatrix(m math.Mat4) { gl.MultMatrixf(m.Ptr()) }

func (r *Renderer) PushMatrix() { gl.PushMatrix() }
func (r *Renderer) PopMatrix()  { gl.PopMatrix() }

func (r *Renderer) Translate(x, y, z float32)        { gl.Translatef(x, y, z) }
func (r *Renderer) Rotate(angleDeg, x, y, z float32) { gl.Rotatef(angleDeg, x, y, z) }
func (r *Renderer) Scale(x, y, z float32)            { gl.Scalef(x, y, z) }

func (r *Renderer) Color(cr, cg, cb float32) { gl.Color3f(cr, cg, cb) }

func (r *Renderer) BindTexture(t gfx.Texture) { gl.BindTexture(gl.TEXTURE_2D, uint32(t)) }

func (r *Renderer) TexEnv(mode gfx.TexEnvMode) {
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, texEnvMode(mode))
}

func (r *Renderer) TexMinFilter(f gfx.Filter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(f))
}

// UploadTexture creates a texture object from img and leaves it bound.
func (r *Renderer) UploadTexture(img *image.RGBA, opts gfx.TextureOptions) gfx.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	if opts.Mipmaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.GENERATE_MIPMAP, gl.TRUE)
	}

	size := img.Bounds().Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(opts.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(opts.MagFilter))
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, texEnvMode(opts.EnvMode))

	t := gfx.Texture(id)
	r.textures[t] = struct{}{}
	logger.Debug("texture uploaded",
		zap.Uint32("id", id),
		zap.Int("width", size.X),
		zap.Int("height", size.Y),
	)
	return t
}

func (r *Renderer) DeleteTextures(ts []gfx.Texture) {
	if len(ts) == 0 {
		return
	}
	ids := make([]uint32, len(ts))
	for i, t := range ts {
		ids[i] = uint32(t)
		delete(r.textures, t)
	}
	gl.DeleteTextures(int32(len(ids)), &ids[0])
}

var lightParams = map[gfx.LightParam]uint32{
	gfx.Position:      gl.POSITION,
	gfx.Ambient:       gl.AMBIENT,
	gfx.Diffuse:       gl.DIFFUSE,
	gfx.Specular:      gl.SPECULAR,
	gfx.SpotDirection: gl.SPOT_DIRECTION,
	gfx.SpotCutoff:    gl.SPOT_CUTOFF,
}

func (r *Renderer) Light(id gfx.LightID, param gfx.LightParam, values ...float32) {
	if len(values) == 0 {
		return
	}
	light := uint32(gl.LIGHT0) + uint32(id)
	pname, ok := lightParams[param]
	if !ok {
		return
	}
	if len(values) == 1 {
		gl.Lightf(light, pname, values[0])
		return
	}
	gl.Lightfv(light, pname, &values[0])
}

func (r *Renderer) Quads(vs []gfx.Vertex)     { emit(gl.QUADS, vs) }
func (r *Renderer) Triangles(vs []gfx.Vertex) { emit(gl.TRIANGLES, vs) }

func emit(mode uint32, vs []gfx.Vertex) {
	if len(vs) == 0 {
		return
	}
	gl.Begin(mode)
	for i := range vs {
		v := &vs[i]
		gl.Normal3f(v.Normal[0], v.Normal[1], v.Normal[2])
		gl.TexCoord2f(v.TexCoord[0], v.TexCoord[1])
		gl.Vertex3f(v.Position[0], v.Position[1], v.Position[2])
	}
	gl.End()
}

func texEnvMode(mode gfx.TexEnvMode) int32 {
	switch mode {
	case gfx.Add:
		return gl.ADD
	default:
		return gl.MODULATE
	}
}

func filter(f gfx.Filter) int32 {
	if f == gfx.Linear {
		return gl.LINEAR
	}
	return gl.NEAREST
}
