package memory

import (
	"encoding/binary"
	"fmt"
	"math"
)

// IntegerArray is a view of unsigned integer scalars, used for triangle
// indices and sparse index lists. Values are returned exactly as uint32.
type IntegerArray struct {
	data   []byte
	count  int
	stride int
	enc    Encoding
}

// NewIntegerArray creates an index view. enc must be UnsignedByte,
// UnsignedShort or UnsignedInt.
func NewIntegerArray(data []byte, byteOffset, count, byteStride int, enc Encoding) IntegerArray {
	if !enc.IsUnsigned() {
		panic(fmt.Sprintf("memory: integer array requires an unsigned encoding, got %s", enc))
	}
	e := NewElementArray(data, byteOffset, count, byteStride, Scalar, enc, false)
	return IntegerArray{data: e.data, count: e.count, stride: e.stride, enc: enc}
}

// AsIntegerArray reinterprets an unsigned SCALAR element array. Panics on
// other shapes or encodings.
func (a ElementArray) AsIntegerArray() IntegerArray {
	a.mustBe(Scalar)
	if !a.enc.IsUnsigned() {
		panic(fmt.Sprintf("memory: integer array requires an unsigned encoding, got %s", a.enc))
	}
	return IntegerArray{data: a.data, count: a.count, stride: a.stride, enc: a.enc}
}

// Len returns the number of indices.
func (a IntegerArray) Len() int {
	return a.count
}

// Encoding returns the index width.
func (a IntegerArray) Encoding() Encoding {
	return a.enc
}

// At returns index i.
func (a IntegerArray) At(i int) uint32 {
	b := a.data[a.offset(i):]
	switch a.enc {
	case UnsignedByte:
		return uint32(b[0])
	case UnsignedShort:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

// Set stores v at position i. Values that do not fit the index width are a
// caller bug and panic rather than wrap.
func (a IntegerArray) Set(i int, v uint32) {
	b := a.data[a.offset(i):]
	switch a.enc {
	case UnsignedByte:
		if v > math.MaxUint8 {
			panic(fmt.Sprintf("memory: index value %d overflows %s", v, a.enc))
		}
		b[0] = byte(v)
	case UnsignedShort:
		if v > math.MaxUint16 {
			panic(fmt.Sprintf("memory: index value %d overflows %s", v, a.enc))
		}
		binary.LittleEndian.PutUint16(b, uint16(v))
	default:
		binary.LittleEndian.PutUint32(b, v)
	}
}

// Max returns the largest index, or 0 for an empty array.
func (a IntegerArray) Max() uint32 {
	var m uint32
	for i := 0; i < a.count; i++ {
		m = max(m, a.At(i))
	}
	return m
}

func (a IntegerArray) offset(i int) int {
	if uint(i) >= uint(a.count) {
		panic(fmt.Sprintf("memory: index %d out of range [0:%d]", i, a.count))
	}
	return i * a.stride
}
