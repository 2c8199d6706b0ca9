package math

import "math"

// Mat4 is a 4x4 matrix in column-major order, the layout glLoadMatrixf and
// glMultMatrixf expect.
//
//	[m0 m4 m8  m12]
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Perspective returns the matrix gluPerspective would build.
// fovYDeg is the vertical field of view in degrees.
func Perspective(fovYDeg, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(Radians(fovYDeg))/2.0))
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt returns the matrix gluLookAt would build.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Rotate returns a rotation of angleDeg degrees around (x, y, z), matching
// glRotatef: the axis is normalized first. A zero axis yields identity.
func Rotate(angleDeg, x, y, z float32) Mat4 {
	axis := Vec3{x, y, z}.Normalize()
	if axis == (Vec3{}) {
		return Identity()
	}

	rad := float64(Radians(angleDeg))
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))
	t := 1 - c
	ax, ay, az := axis.X, axis.Y, axis.Z

	return Mat4{
		t*ax*ax + c, t*ax*ay + s*az, t*ax*az - s*ay, 0,
		t*ax*ay - s*az, t*ay*ay + c, t*ay*az + s*ax, 0,
		t*ax*az + s*ay, t*ay*az - s*ax, t*az*az + c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * other, so other is applied first when transforming a point.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = m[row]*other[col*4] +
				m[4+row]*other[col*4+1] +
				m[8+row]*other[col*4+2] +
				m[12+row]*other[col*4+3]
		}
	}
	return out
}

// TransformPoint transforms a point (w=1), dividing by w when it is not 1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection transforms a direction (w=0), ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Ptr returns a pointer to the first element, for gl.LoadMatrixf and friends.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
