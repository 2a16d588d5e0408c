package memory

import "github.com/Faultbox/midgard-gltf/pkg/math"

// Array is a read-only sequence of typed elements.
type Array[T any] interface {
	Len() int
	At(i int) T
}

// MutableArray is an Array whose elements can be written in place.
type MutableArray[T any] interface {
	Array[T]
	Set(i int, v T)
}

// CopyTo copies elements of src into dst one index at a time and returns
// the number of elements copied, min(src.Len(), len(dst)).
func CopyTo[T any](src Array[T], dst []T) int {
	n := min(src.Len(), len(dst))
	for i := 0; i < n; i++ {
		dst[i] = src.At(i)
	}
	return n
}

// Fill writes src into dst one index at a time and returns the number of
// elements written, min(dst.Len(), len(src)).
func Fill[T any](dst MutableArray[T], src []T) int {
	n := min(dst.Len(), len(src))
	for i := 0; i < n; i++ {
		dst.Set(i, src[i])
	}
	return n
}

// ToSlice copies every element of src into a new slice.
func ToSlice[T any](src Array[T]) []T {
	out := make([]T, src.Len())
	CopyTo(src, out)
	return out
}

// AsVector4 adapts any array to 4-component vectors using widen. The
// returned view is read-only; dense arrays expose writable adapters through
// their own AsVector4 methods.
func AsVector4[T any](src Array[T], widen func(T) math.Vec4) Array[math.Vec4] {
	return readVector4[T]{src: src, widen: widen}
}

type readVector4[T any] struct {
	src   Array[T]
	widen func(T) math.Vec4
}

func (a readVector4[T]) Len() int { return a.src.Len() }
func (a readVector4[T]) At(i int) math.Vec4 { return a.widen(a.src.At(i)) }

type vector4Adapter[T any] struct {
	src    MutableArray[T]
	widen  func(T) math.Vec4
	narrow func(math.Vec4) T
}

func (a vector4Adapter[T]) Len() int { return a.src.Len() }
func (a vector4Adapter[T]) At(i int) math.Vec4 { return a.widen(a.src.At(i)) }
func (a vector4Adapter[T]) Set(i int, v math.Vec4) { a.src.Set(i, a.narrow(v)) }
