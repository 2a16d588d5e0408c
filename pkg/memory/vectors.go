package memory

import "github.com/Faultbox/midgard-gltf/pkg/math"

// ScalarArray is a view of SCALAR elements decoded as float32.
type ScalarArray struct{ ElementArray }

// NewScalarArray creates a SCALAR view; see NewElementArray for the
// meaning of the arguments.
func NewScalarArray(data []byte, byteOffset, count, byteStride int, enc Encoding, normalized bool) ScalarArray {
	return ScalarArray{NewElementArray(data, byteOffset, count, byteStride, Scalar, enc, normalized)}
}

// AsScalarArray reinterprets a SCALAR element array. Panics on other shapes.
func (a ElementArray) AsScalarArray() ScalarArray {
	a.mustBe(Scalar)
	return ScalarArray{a}
}

// At returns element i.
func (a ScalarArray) At(i int) float32 { return a.Component(i, 0) }

// Set stores v at element i, quantized to the encoding.
func (a ScalarArray) Set(i int, v float32) { a.SetComponent(i, 0, v) }

// AsVector4 exposes each scalar as (x, 0, 0, 0).
func (a ScalarArray) AsVector4() MutableArray[math.Vec4] {
	return vector4Adapter[float32]{
		src:    a,
		widen:  func(f float32) math.Vec4 { return math.Vec4{f, 0, 0, 0} },
		narrow: func(v math.Vec4) float32 { return v[0] },
	}
}

// Vector2Array is a view of VEC2 elements.
type Vector2Array struct{ ElementArray }

// NewVector2Array creates a VEC2 view.
func NewVector2Array(data []byte, byteOffset, count, byteStride int, enc Encoding, normalized bool) Vector2Array {
	return Vector2Array{NewElementArray(data, byteOffset, count, byteStride, Vec2, enc, normalized)}
}

// AsVector2Array reinterprets a VEC2 element array. Panics on other shapes.
func (a ElementArray) AsVector2Array() Vector2Array {
	a.mustBe(Vec2)
	return Vector2Array{a}
}

// At returns element i.
func (a Vector2Array) At(i int) math.Vec2 {
	return math.Vec2{X: a.Component(i, 0), Y: a.Component(i, 1)}
}

// Set stores v at element i.
func (a Vector2Array) Set(i int, v math.Vec2) {
	a.SetComponent(i, 0, v.X)
	a.SetComponent(i, 1, v.Y)
}

// AsVector4 exposes each element as (x, y, 0, 0).
func (a Vector2Array) AsVector4() MutableArray[math.Vec4] {
	return vector4Adapter[math.Vec2]{src: a, widen: math.Vec2.Vec4, narrow: math.Vec4.Vec2}
}

// Vector3Array is a view of VEC3 elements.
type Vector3Array struct{ ElementArray }

// NewVector3Array creates a VEC3 view.
func NewVector3Array(data []byte, byteOffset, count, byteStride int, enc Encoding, normalized bool) Vector3Array {
	return Vector3Array{NewElementArray(data, byteOffset, count, byteStride, Vec3, enc, normalized)}
}

// AsVector3Array reinterprets a VEC3 element array. Panics on other shapes.
func (a ElementArray) AsVector3Array() Vector3Array {
	a.mustBe(Vec3)
	return Vector3Array{a}
}

// At returns element i.
func (a Vector3Array) At(i int) math.Vec3 {
	return math.Vec3{X: a.Component(i, 0), Y: a.Component(i, 1), Z: a.Component(i, 2)}
}

// Set stores v at element i.
func (a Vector3Array) Set(i int, v math.Vec3) {
	a.SetComponent(i, 0, v.X)
	a.SetComponent(i, 1, v.Y)
	a.SetComponent(i, 2, v.Z)
}

// AsVector4 exposes each element as (x, y, z, 0).
func (a Vector3Array) AsVector4() MutableArray[math.Vec4] {
	return vector4Adapter[math.Vec3]{src: a, widen: math.Vec3.Vec4, narrow: math.Vec4.Vec3}
}

// Vector4Array is a view of VEC4 elements.
type Vector4Array struct{ ElementArray }

// NewVector4Array creates a VEC4 view.
func NewVector4Array(data []byte, byteOffset, count, byteStride int, enc Encoding, normalized bool) Vector4Array {
	return Vector4Array{NewElementArray(data, byteOffset, count, byteStride, Vec4, enc, normalized)}
}

// AsVector4Array reinterprets a VEC4 element array. Panics on other shapes.
func (a ElementArray) AsVector4Array() Vector4Array {
	a.mustBe(Vec4)
	return Vector4Array{a}
}

// At returns element i.
func (a Vector4Array) At(i int) math.Vec4 {
	return math.Vec4{a.Component(i, 0), a.Component(i, 1), a.Component(i, 2), a.Component(i, 3)}
}

// Set stores v at element i.
func (a Vector4Array) Set(i int, v math.Vec4) {
	for c := range v {
		a.SetComponent(i, c, v[c])
	}
}

// AsVector4 returns the array itself.
func (a Vector4Array) AsVector4() MutableArray[math.Vec4] {
	return a
}

// QuaternionArray is a view of VEC4 elements read as (x, y, z, w)
// rotations.
type QuaternionArray struct{ ElementArray }

// NewQuaternionArray creates a quaternion view over VEC4 data.
func NewQuaternionArray(data []byte, byteOffset, count, byteStride int, enc Encoding, normalized bool) QuaternionArray {
	return QuaternionArray{NewElementArray(data, byteOffset, count, byteStride, Vec4, enc, normalized)}
}

// AsQuaternionArray reinterprets a VEC4 element array. Panics on other
// shapes.
func (a ElementArray) AsQuaternionArray() QuaternionArray {
	a.mustBe(Vec4)
	return QuaternionArray{a}
}

// At returns rotation i as stored; it is not renormalized.
func (a QuaternionArray) At(i int) math.Quat {
	return math.Quat{X: a.Component(i, 0), Y: a.Component(i, 1), Z: a.Component(i, 2), W: a.Component(i, 3)}
}

// Set stores q at element i.
func (a QuaternionArray) Set(i int, q math.Quat) {
	a.SetComponent(i, 0, q.X)
	a.SetComponent(i, 1, q.Y)
	a.SetComponent(i, 2, q.Z)
	a.SetComponent(i, 3, q.W)
}

// AsVector4 exposes each rotation as (x, y, z, w).
func (a QuaternionArray) AsVector4() MutableArray[math.Vec4] {
	return vector4Adapter[math.Quat]{src: a, widen: math.Quat.Vec4, narrow: math.Vec4.Quat}
}

// Matrix4x4Array is a view of MAT4 elements in column-major order.
type Matrix4x4Array struct{ ElementArray }

// NewMatrix4x4Array creates a MAT4 view.
func NewMatrix4x4Array(data []byte, byteOffset, count, byteStride int, enc Encoding, normalized bool) Matrix4x4Array {
	return Matrix4x4Array{NewElementArray(data, byteOffset, count, byteStride, Mat4, enc, normalized)}
}

// AsMatrix4x4Array reinterprets a MAT4 element array. Panics on other
// shapes.
func (a ElementArray) AsMatrix4x4Array() Matrix4x4Array {
	a.mustBe(Mat4)
	return Matrix4x4Array{a}
}

// At returns matrix i in column-major order.
func (a Matrix4x4Array) At(i int) math.Mat4 {
	var m math.Mat4
	for c := range m {
		m[c] = a.Component(i, c)
	}
	return m
}

// Set stores m at element i.
func (a Matrix4x4Array) Set(i int, m math.Mat4) {
	for c := range m {
		a.SetComponent(i, c, m[c])
	}
}
