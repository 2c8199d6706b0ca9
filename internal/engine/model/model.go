package model

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/internal/logger"
)

var (
	// ErrNotLoaded is returned by Initialize before a successful Load.
	ErrNotLoaded = errors.New("model not loaded")
	// ErrDisposed is returned when a disposed model is used again.
	ErrDisposed = errors.New("model disposed")
)

// Model is a glTF/GLB file prepared for immediate-mode drawing.
//
// Load parses the file on the CPU, Initialize builds the triangle list
// sent on every Draw. A model is not safe for concurrent use.
type Model struct {
	dir, file string
	opts      Options

	mesh      *Mesh
	triangles []gfx.Vertex
	disposed  bool
}

// Open returns an unloaded model for dir/file.
func Open(dir, file string) *Model {
	return OpenWithOptions(dir, file, DefaultOptions())
}

// OpenWithOptions is Open with explicit preparation options.
func OpenWithOptions(dir, file string, opts Options) *Model {
	return &Model{dir: dir, file: file, opts: opts}
}

// Path returns the full model path.
func (m *Model) Path() string {
	return filepath.Join(m.dir, m.file)
}

// Load reads and decodes the model file.
func (m *Model) Load() error {
	if m.disposed {
		return ErrDisposed
	}
	doc, err := gltf.Open(m.Path())
	if err != nil {
		return fmt.Errorf("opening model %s: %w", m.Path(), err)
	}
	mesh, err := decode(doc)
	if err != nil {
		return fmt.Errorf("decoding model %s: %w", m.Path(), err)
	}
	m.mesh = mesh

	logger.Debug("model loaded",
		zap.String("path", m.Path()),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3))
	return nil
}

// Initialize expands the indexed mesh into the triangle list used by Draw.
func (m *Model) Initialize() error {
	if m.disposed {
		return ErrDisposed
	}
	if m.mesh == nil {
		return ErrNotLoaded
	}

	idx := m.mesh.Indices
	tris := make([]gfx.Vertex, 0, len(idx))
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := m.mesh.Vertices[idx[i]], m.mesh.Vertices[idx[i+1]], m.mesh.Vertices[idx[i+2]]
		if m.opts.ReverseWinding {
			b, c = c, b
		}
		tris = append(tris, a, b, c)
	}
	m.triangles = tris

	fields := []zap.Field{zap.String("path", m.Path()), zap.Int("triangles", m.TriangleCount())}
	if b := m.Bounds(); !b.Empty() {
		c := b.Center()
		fields = append(fields, zap.Float32s("center", c[:]))
	}
	logger.Debug("model prepared", fields...)
	return nil
}

// Draw submits the model's triangles with the current matrix, colour and
// texture state.
func (m *Model) Draw(ctx gfx.Context) {
	if len(m.triangles) == 0 {
		return
	}
	ctx.Triangles(m.triangles)
}

// Dispose releases the model's geometry. Further Load/Initialize calls fail.
func (m *Model) Dispose() {
	m.mesh = nil
	m.triangles = nil
	m.disposed = true
}

// Bounds returns the loaded model's bounding box.
func (m *Model) Bounds() Bounds {
	if m.mesh == nil {
		return emptyBounds()
	}
	return m.mesh.Bounds
}

// TriangleCount returns the number of prepared triangles.
func (m *Model) TriangleCount() int {
	return len(m.triangles) / 3
}
