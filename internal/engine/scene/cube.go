package scene

import (
	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/pkg/math"
)

// unitCube is the ±1 cube as quads, wound clockwise seen from outside,
// with one normal per face and the full texture on every face.
var unitCube = buildCube()

func buildCube() []gfx.Vertex {
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		// +Z
		{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {-1, 1, 1}, {1, 1, 1}, {1, -1, 1}}},
		// -Z
		{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, -1}}},
		// +X
		{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, 1, 1}, {1, 1, -1}, {1, -1, -1}}},
		// -X
		{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, 1, -1}, {-1, 1, 1}, {-1, -1, 1}}},
		// +Y
		{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {-1, 1, -1}, {1, 1, -1}, {1, 1, 1}}},
		// -Y
		{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {1, -1, 1}, {1, -1, -1}}},
	}
	uvs := [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	vs := make([]gfx.Vertex, 0, 24)
	for _, f := range faces {
		for i, c := range f.corners {
			vs = append(vs, gfx.Vertex{Position: c, Normal: f.normal, TexCoord: uvs[i]})
		}
	}
	return vs
}

// Floor extent on X and Z.
const groundHalfSize = 1000

var groundQuad = buildGround()

func buildGround() []gfx.Vertex {
	corners := [4][3]float32{
		{-groundHalfSize, 0, -groundHalfSize},
		{groundHalfSize, 0, -groundHalfSize},
		{groundHalfSize, 0, groundHalfSize},
		{-groundHalfSize, 0, groundHalfSize},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	v := func(c [3]float32) math.Vec3 { return math.V3(c[0], c[1], c[2]) }
	normal := math.FaceNormal(v(corners[0]), v(corners[1]), v(corners[2])).Array()

	vs := make([]gfx.Vertex, 4)
	for i := range corners {
		vs[i] = gfx.Vertex{Position: corners[i], Normal: normal, TexCoord: uvs[i]}
	}
	return vs
}
