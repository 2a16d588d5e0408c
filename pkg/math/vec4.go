package math

// Vec4 is a 4-component vector. Colors, tangents, joint indices and
// weights are all read through it.
type Vec4 [4]float32

// Vec3 drops the w component.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Vec2 keeps the first two components.
func (v Vec4) Vec2() Vec2 {
	return Vec2{v[0], v[1]}
}

// Quat reinterprets the vector as an (x, y, z, w) quaternion.
func (v Vec4) Quat() Quat {
	return Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

// Sum returns the sum of the components.
func (v Vec4) Sum() float32 {
	return v[0] + v[1] + v[2] + v[3]
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2]) && isFinite(v[3])
}
