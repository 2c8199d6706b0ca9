package gfx

import (
	"fmt"
	"image"

	"github.com/Faultbox/stairscene/pkg/math"
)

// Call is one recorded command.
type Call struct {
	Op   string
	Args []float32

	// Snapshot of the pipeline at the time of the call.
	ModelView math.Mat4
	Texture   Texture
	Color     [3]float32
	Vertices  []Vertex
}

// Recorder is a Context that executes nothing and records everything,
// tracking the matrix stacks so callers can inspect where geometry ends up.
type Recorder struct {
	Calls     []Call
	Enabled   map[Capability]bool
	Lights    map[LightID]map[LightParam][]float32
	Textures  map[Texture]*image.RGBA
	Underflow bool

	mode   MatrixMode
	stacks [3][]math.Mat4
	color  [3]float32
	bound  Texture
	next   Texture
}

// NewRecorder returns an empty recorder with identity matrix stacks.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.Reset()
	return r
}

// Reset clears recorded calls and pipeline state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Enabled = make(map[Capability]bool)
	r.Lights = make(map[LightID]map[LightParam][]float32)
	r.Textures = make(map[Texture]*image.RGBA)
	r.Underflow = false
	r.mode = ModelView
	for i := range r.stacks {
		r.stacks[i] = []math.Mat4{math.Identity()}
	}
	r.color = [3]float32{1, 1, 1}
	r.bound = 0
}

// ClearCalls drops recorded calls but keeps pipeline state.
func (r *Recorder) ClearCalls() {
	r.Calls = nil
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the recorded calls with the given op.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Depth returns the current depth of a matrix stack.
func (r *Recorder) Depth(mode MatrixMode) int {
	return len(r.stacks[mode])
}

// Top returns the current matrix of a stack.
func (r *Recorder) Top(mode MatrixMode) math.Mat4 {
	s := r.stacks[mode]
	return s[len(s)-1]
}

func (r *Recorder) record(op string, args ...float32) {
	r.Calls = append(r.Calls, Call{
		Op:        op,
		Args:      args,
		ModelView: r.Top(ModelView),
		Texture:   r.bound,
		Color:     r.color,
	})
}

func (r *Recorder) apply(m math.Mat4) {
	s := r.stacks[r.mode]
	s[len(s)-1] = s[len(s)-1].Mul(m)
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) { r.record("clear_color", cr, cg, cb, ca) }
func (r *Recorder) Clear()                            { r.record("clear") }
func (r *Recorder) Flush()                            { r.record("flush") }

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("viewport", float32(x), float32(y), float32(width), float32(height))
}

func (r *Recorder) Enable(c Capability) {
	r.Enabled[c] = true
	r.record("enable", float32(c))
}

func (r *Recorder) SmoothShading()               { r.record("smooth_shading") }
func (r *Recorder) FrontFaceCW()                 { r.record("front_face_cw") }
func (r *Recorder) ColorMaterialAmbientDiffuse() { r.record("color_material") }

func (r *Recorder) MatrixMode(mode MatrixMode) {
	r.mode = mode
	r.record("matrix_mode", float32(mode))
}

func (r *Recorder) LoadIdentity() {
	s := r.stacks[r.mode]
	s[len(s)-1] = math.Identity()
	r.record("load_identity")
}

func (r *Recorder) MultMatrix(m math.Mat4) {
	r.apply(m)
	r.record("mult_matrix")
}

func (r *Recorder) PushMatrix() {
	r.stacks[r.mode] = append(r.stacks[r.mode], r.Top(r.mode))
	r.record("push")
}

func (r *Recorder) PopMatrix() {
	if len(r.stacks[r.mode]) == 1 {
		r.Underflow = true
	} else {
		r.stacks[r.mode] = r.stacks[r.mode][:len(r.stacks[r.mode])-1]
	}
	r.record("pop")
}

func (r *Recorder) Translate(x, y, z float32) {
	r.apply(math.Translate(x, y, z))
	r.record("translate", x, y, z)
}

func (r *Recorder) Rotate(angleDeg, x, y, z float32) {
	r.apply(math.Rotate(angleDeg, x, y, z))
	r.record("rotate", angleDeg, x, y, z)
}

func (r *Recorder) Scale(x, y, z float32) {
	r.apply(math.Scale(x, y, z))
	r.record("scale", x, y, z)
}

func (r *Recorder) Color(cr, cg, cb float32) {
	r.color = [3]float32{cr, cg, cb}
	r.record("color", cr, cg, cb)
}

func (r *Recorder) BindTexture(t Texture) {
	r.bound = t
	r.record("bind_texture", float32(t))
}

func (r *Recorder) TexEnv(mode TexEnvMode) { r.record("tex_env", float32(mode)) }
func (r *Recorder) TexMinFilter(f Filter)  { r.record("tex_min_filter", float32(f)) }

func (r *Recorder) UploadTexture(img *image.RGBA, opts TextureOptions) Texture {
	r.next++
	r.Textures[r.next] = img
	r.bound = r.next
	r.record("upload_texture", float32(r.next), float32(opts.EnvMode))
	return r.next
}

func (r *Recorder) DeleteTextures(ts []Texture) {
	for _, t := range ts {
		delete(r.Textures, t)
	}
	r.record("delete_textures", float32(len(ts)))
}

func (r *Recorder) Light(id LightID, param LightParam, values ...float32) {
	if r.Lights[id] == nil {
		r.Lights[id] = make(map[LightParam][]float32)
	}
	r.Lights[id][param] = append([]float32(nil), values...)
	r.record(fmt.Sprintf("light%d.%s", id, param), values...)
}

func (r *Recorder) Quads(vs []Vertex) {
	r.record("quads")
	r.Calls[len(r.Calls)-1].Vertices = vs
}

func (r *Recorder) Triangles(vs []Vertex) {
	r.record("triangles")
	r.Calls[len(r.Calls)-1].Vertices = vs
}
