package math

import "math"

// Vec3 is a 3D vector: positions, normals, node translation and scale.
type Vec3 struct {
	X, Y, Z float32
}

// One returns the (1, 1, 1) vector, the default glTF node scale.
func One() Vec3 {
	return Vec3{1, 1, 1}
}

// Length returns the magnitude. Decompose uses it to recover scale from
// matrix columns.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Vec4 widens the vector to four components with w = 0.
func (v Vec3) Vec4() Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}
