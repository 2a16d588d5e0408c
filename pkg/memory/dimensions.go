package memory

import "fmt"

// Dimensions is the element shape of an accessor.
type Dimensions uint8

// Element shapes. The zero value is not a valid shape.
const (
	Scalar Dimensions = iota + 1
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

var dimensionNames = map[Dimensions]string{
	Scalar: "SCALAR",
	Vec2:   "VEC2",
	Vec3:   "VEC3",
	Vec4:   "VEC4",
	Mat2:   "MAT2",
	Mat3:   "MAT3",
	Mat4:   "MAT4",
}

// ParseDimensions parses the glTF accessor type string.
func ParseDimensions(s string) (Dimensions, bool) {
	for d, name := range dimensionNames {
		if name == s {
			return d, true
		}
	}
	return 0, false
}

// String returns the glTF accessor type string.
func (d Dimensions) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(d))
}

// IsValid reports whether d is a known shape.
func (d Dimensions) IsValid() bool {
	_, ok := dimensionNames[d]
	return ok
}

// IsMatrix reports whether d is a MATn shape.
func (d Dimensions) IsMatrix() bool {
	return d == Mat2 || d == Mat3 || d == Mat4
}

// Components returns the number of components per element.
func (d Dimensions) Components() int {
	switch d {
	case Scalar:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4, Mat2:
		return 4
	case Mat3:
		return 9
	case Mat4:
		return 16
	default:
		return 0
	}
}

// Rows returns the number of components per matrix column, or the number
// of components for non-matrix shapes.
func (d Dimensions) Rows() int {
	switch d {
	case Mat2:
		return 2
	case Mat3:
		return 3
	case Mat4:
		return 4
	default:
		return d.Components()
	}
}

// Columns returns the number of matrix columns, 1 for non-matrix shapes.
func (d Dimensions) Columns() int {
	if d.IsMatrix() {
		return d.Rows()
	}
	return 1
}

// ColumnByteLength returns the distance between matrix columns. Each column
// of a matrix element starts on a 4-byte boundary, so MAT2 and MAT3 of
// 1-byte components and MAT3 of 2-byte components carry padding.
func ColumnByteLength(d Dimensions, e Encoding) int {
	n := d.Rows() * e.ByteLength()
	if d.IsMatrix() {
		return align4(n)
	}
	return n
}

// ElementByteLength returns the tightly packed size of one element,
// including matrix column padding.
func ElementByteLength(d Dimensions, e Encoding) int {
	return d.Columns() * ColumnByteLength(d, e)
}

func align4(n int) int {
	return (n + 3) &^ 3
}
