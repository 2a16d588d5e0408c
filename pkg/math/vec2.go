// Package math provides the float32 vector, quaternion and matrix types used
// as glTF accessor element types and for node transforms.
package math

import "math"

// Vec2 is a 2D vector, the element type of VEC2 accessors (texture
// coordinates).
type Vec2 struct {
	X, Y float32
}

// Vec4 widens the vector to four components, zero filled.
func (v Vec2) Vec4() Vec4 {
	return Vec4{v.X, v.Y, 0, 0}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
