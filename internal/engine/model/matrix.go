package model

import (
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/stairscene/pkg/math"
)

// nodeMatrix returns a node's local transform. glTF nodes carry either a
// full matrix or translation/rotation/scale, applied as T * R * S.
func nodeMatrix(n *gltf.Node) math.Mat4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out math.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()

	return math.Translate(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul(quatMatrix(r)).
		Mul(math.Scale(float32(s[0]), float32(s[1]), float32(s[2])))
}

// quatMatrix converts a unit quaternion (x, y, z, w) to a rotation matrix.
func quatMatrix(q [4]float64) math.Mat4 {
	x, y, z, w := float32(q[0]), float32(q[1]), float32(q[2]), float32(q[3])
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return math.Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
