package memory

import "fmt"

// ElementArray is a strided view of typed elements over a byte slice. It is
// the building block for every shaped array in this package.
type ElementArray struct {
	data       []byte
	count      int
	stride     int
	dims       Dimensions
	enc        Encoding
	normalized bool
}

// NewElementArray creates a view over data starting at byteOffset.
//
// byteStride 0 means tightly packed. count < 0 means "as many elements as
// fit"; otherwise the view exposes at most count elements. An offset past
// the end of data yields an empty view.
//
// Invalid encodings or shapes and a non-zero stride smaller than the element
// size are caller bugs and panic.
func NewElementArray(data []byte, byteOffset, count, byteStride int, dims Dimensions, enc Encoding, normalized bool) ElementArray {
	if !enc.IsValid() {
		panic(fmt.Sprintf("memory: invalid encoding %s", enc))
	}
	if !dims.IsValid() {
		panic(fmt.Sprintf("memory: invalid dimensions %s", dims))
	}
	if byteOffset < 0 {
		panic(fmt.Sprintf("memory: negative byte offset %d", byteOffset))
	}

	size := ElementByteLength(dims, enc)
	stride := byteStride
	if stride == 0 {
		stride = size
	} else if stride < size {
		panic(fmt.Sprintf("memory: byte stride %d smaller than element size %d", stride, size))
	}

	if byteOffset > len(data) {
		byteOffset = len(data)
	}
	data = data[byteOffset:]

	return ElementArray{
		data:       data,
		count:      FitCount(len(data), stride, size, count),
		stride:     stride,
		dims:       dims,
		enc:        enc,
		normalized: normalized,
	}
}

// FitCount returns how many elements of itemSize bytes, stride bytes apart,
// fit in available bytes, capped at requested when requested >= 0. The last
// element does not need a full stride of room, only its own bytes.
func FitCount(available, stride, itemSize, requested int) int {
	if stride <= 0 || itemSize <= 0 || available < itemSize {
		return 0
	}
	n := available / stride
	if available-n*stride >= itemSize {
		n++
	}
	if requested >= 0 && requested < n {
		n = requested
	}
	return n
}

// NewZeroArray creates a view of count zero-valued elements. Every index
// shares one element of storage, so the view costs the same for any count.
// Writes through it change every element at once.
func NewZeroArray(count int, dims Dimensions, enc Encoding, normalized bool) ElementArray {
	if count < 0 {
		panic(fmt.Sprintf("memory: negative count %d", count))
	}
	e := NewElementArray(make([]byte, ElementByteLength(dims, enc)), 0, 1, 0, dims, enc, normalized)
	e.count = count
	e.stride = 0
	return e
}

// Layout describes how an ElementArray addresses its bytes.
type Layout struct {
	ByteOffset int
	ByteStride int
	Count      int
	Dimensions Dimensions
	Encoding   Encoding
	Normalized bool
}

// Layout returns the layout of the view relative to its own first byte.
func (a ElementArray) Layout() Layout {
	return Layout{
		ByteStride: a.stride,
		Count:      a.count,
		Dimensions: a.dims,
		Encoding:   a.enc,
		Normalized: a.normalized,
	}
}

// Len returns the number of elements.
func (a ElementArray) Len() int {
	return a.count
}

// Dimensions returns the element shape.
func (a ElementArray) Dimensions() Dimensions {
	return a.dims
}

// Encoding returns the component encoding.
func (a ElementArray) Encoding() Encoding {
	return a.enc
}

// Normalized reports whether integer components are normalized.
func (a ElementArray) Normalized() bool {
	return a.normalized
}

// ByteStride returns the effective distance between elements, 0 for a zero
// view.
func (a ElementArray) ByteStride() int {
	return a.stride
}

// Bytes returns the raw bytes of element i, excluding stride padding.
func (a ElementArray) Bytes(i int) []byte {
	a.checkIndex(i)
	start := i * a.stride
	return a.data[start : start+ElementByteLength(a.dims, a.enc)]
}

// Component returns component c of element i.
func (a ElementArray) Component(i, c int) float32 {
	return decodeFloat32(a.data[a.offset(i, c):], a.enc, a.normalized)
}

// Value returns component c of element i without narrowing to float32.
func (a ElementArray) Value(i, c int) float64 {
	return decodeComponent(a.data[a.offset(i, c):], a.enc, a.normalized)
}

// SetComponent stores v into component c of element i.
func (a ElementArray) SetComponent(i, c int, v float32) {
	encodeComponent(a.data[a.offset(i, c):], a.enc, a.normalized, float64(v))
}

// offset locates component c of element i. Components run down matrix
// columns, and every column starts at a multiple of ColumnByteLength.
func (a ElementArray) offset(i, c int) int {
	a.checkIndex(i)
	if uint(c) >= uint(a.dims.Components()) {
		panic(fmt.Sprintf("memory: component %d out of range [0:%d]", c, a.dims.Components()))
	}
	rows := a.dims.Rows()
	return i*a.stride + (c/rows)*ColumnByteLength(a.dims, a.enc) + (c%rows)*a.enc.ByteLength()
}

func (a ElementArray) checkIndex(i int) {
	if uint(i) >= uint(a.count) {
		panic(fmt.Sprintf("memory: index %d out of range [0:%d]", i, a.count))
	}
}

func (a ElementArray) mustBe(d Dimensions) {
	if a.dims != d {
		panic(fmt.Sprintf("memory: %s array viewed as %s", a.dims, d))
	}
}
