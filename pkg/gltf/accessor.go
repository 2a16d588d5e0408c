package gltf

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/midgard-gltf/pkg/math"
	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

// Accessor describes typed elements stored in a buffer view. An accessor
// without a buffer view reads as zeros, optionally patched by Sparse.
type Accessor struct {
	slot
	Properties
	Name       string
	bufferView int
	ByteOffset int
	Count      int
	Encoding   memory.Encoding
	Normalized bool
	Dimensions memory.Dimensions
	Min        []float64
	Max        []float64
	Sparse     *AccessorSparse
}

// AccessorSparse replaces Count elements of the dense data. Indices and
// values are tightly packed in their buffer views.
type AccessorSparse struct {
	Properties
	Count             int
	indicesView       int
	IndicesByteOffset int
	IndicesEncoding   memory.Encoding
	valuesView        int
	ValuesByteOffset  int
}

// IndicesViewIndex returns the raw buffer view reference of the indices.
func (s *AccessorSparse) IndicesViewIndex() int { return s.indicesView }

// ValuesViewIndex returns the raw buffer view reference of the values.
func (s *AccessorSparse) ValuesViewIndex() int { return s.valuesView }

// CreateAccessor appends an empty accessor. Use one of the Set methods to
// describe its data.
func (d *Document) CreateAccessor(name string) *Accessor {
	a := &Accessor{slot: slot{d, len(d.accessors)}, Name: name, bufferView: -1}
	d.accessors = append(d.accessors, a)
	return a
}

// BufferView returns the viewed buffer view, or nil when absent or out of
// range.
func (a *Accessor) BufferView() *BufferView {
	return at(a.doc.bufferViews, a.bufferView)
}

// BufferViewIndex returns the raw buffer view reference, -1 when absent.
func (a *Accessor) BufferViewIndex() int {
	return a.bufferView
}

// SetVertexData points the accessor at count elements of view starting at
// byteOffset.
func (a *Accessor) SetVertexData(view *BufferView, byteOffset, count int, dims memory.Dimensions, enc memory.Encoding, normalized bool) {
	a.bufferView = a.doc.ref(view)
	a.ByteOffset = byteOffset
	a.Count = count
	a.Dimensions = dims
	a.Encoding = enc
	a.Normalized = normalized
}

// SetIndexData points the accessor at count scalar indices of view.
func (a *Accessor) SetIndexData(view *BufferView, byteOffset, count int, enc memory.Encoding) {
	a.SetVertexData(view, byteOffset, count, memory.Scalar, enc, false)
}

// SetZeros describes count zero-valued elements with no backing view.
func (a *Accessor) SetZeros(count int, dims memory.Dimensions, enc memory.Encoding, normalized bool) {
	a.bufferView = -1
	a.ByteOffset = 0
	a.Count = count
	a.Dimensions = dims
	a.Encoding = enc
	a.Normalized = normalized
}

// SetSparse attaches a sparse block of count replacements.
func (a *Accessor) SetSparse(count int, indices *BufferView, indicesByteOffset int, indicesEnc memory.Encoding, values *BufferView, valuesByteOffset int) {
	a.Sparse = &AccessorSparse{
		Count:             count,
		indicesView:       a.doc.ref(indices),
		IndicesByteOffset: indicesByteOffset,
		IndicesEncoding:   indicesEnc,
		valuesView:        a.doc.ref(values),
		ValuesByteOffset:  valuesByteOffset,
	}
}

// ElementByteLength returns the size of one element.
func (a *Accessor) ElementByteLength() int {
	return memory.ElementByteLength(a.Dimensions, a.Encoding)
}

// MaxAccessorByteLength caps the bytes an accessor may describe. It is the
// largest payload a binary glTF container can carry.
const MaxAccessorByteLength int64 = stdmath.MaxUint32

// MaxCount returns the largest element count whose data stays within
// MaxAccessorByteLength, or 0 when the layout is invalid.
func (a *Accessor) MaxCount() int64 {
	elem := int64(a.ElementByteLength())
	if elem <= 0 {
		return 0
	}
	return MaxAccessorByteLength / elem
}

// AsElementArray returns the dense data of the accessor, ignoring any
// sparse block.
func (a *Accessor) AsElementArray() (memory.ElementArray, error) {
	return a.dense(a.Normalized)
}

// AsScalarArray resolves a SCALAR accessor.
func (a *Accessor) AsScalarArray() (memory.Array[float32], error) {
	return resolveArray(a, memory.Scalar, func(e memory.ElementArray) memory.MutableArray[float32] {
		return e.AsScalarArray()
	})
}

// AsVector2Array resolves a VEC2 accessor.
func (a *Accessor) AsVector2Array() (memory.Array[math.Vec2], error) {
	return resolveArray(a, memory.Vec2, func(e memory.ElementArray) memory.MutableArray[math.Vec2] {
		return e.AsVector2Array()
	})
}

// AsVector3Array resolves a VEC3 accessor.
func (a *Accessor) AsVector3Array() (memory.Array[math.Vec3], error) {
	return resolveArray(a, memory.Vec3, func(e memory.ElementArray) memory.MutableArray[math.Vec3] {
		return e.AsVector3Array()
	})
}

// AsVector4Array resolves a VEC4 accessor.
func (a *Accessor) AsVector4Array() (memory.Array[math.Vec4], error) {
	return resolveArray(a, memory.Vec4, func(e memory.ElementArray) memory.MutableArray[math.Vec4] {
		return e.AsVector4Array()
	})
}

// AsQuaternionArray resolves a VEC4 accessor as rotations.
func (a *Accessor) AsQuaternionArray() (memory.Array[math.Quat], error) {
	return resolveArray(a, memory.Vec4, func(e memory.ElementArray) memory.MutableArray[math.Quat] {
		return e.AsQuaternionArray()
	})
}

// AsMatrix4x4Array resolves a MAT4 accessor.
func (a *Accessor) AsMatrix4x4Array() (memory.Array[math.Mat4], error) {
	return resolveArray(a, memory.Mat4, func(e memory.ElementArray) memory.MutableArray[math.Mat4] {
		return e.AsMatrix4x4Array()
	})
}

// AsVector4View resolves a SCALAR, VEC2, VEC3 or VEC4 accessor as
// 4-component vectors with the missing components read as zero, so
// attributes of different widths can be handled alike. Dense accessors
// return a writable view; writes keep only the components the accessor has.
func (a *Accessor) AsVector4View() (memory.Array[math.Vec4], error) {
	switch a.Dimensions {
	case memory.Scalar:
		arr, err := a.AsScalarArray()
		return vector4View(arr, err, func(f float32) math.Vec4 { return math.Vec4{f, 0, 0, 0} })
	case memory.Vec2:
		arr, err := a.AsVector2Array()
		return vector4View(arr, err, math.Vec2.Vec4)
	case memory.Vec3:
		arr, err := a.AsVector3Array()
		return vector4View(arr, err, math.Vec3.Vec4)
	case memory.Vec4:
		return a.AsVector4Array()
	}
	return nil, fmt.Errorf("%w: accessor %d is %s, not a vector of at most 4 components", ErrInvalidValue, a.index, a.Dimensions)
}

// vector4View widens a resolved array. Dense views carry their own
// adapters; sparse overlays are read through memory.AsVector4.
func vector4View[T any](arr memory.Array[T], err error, widen func(T) math.Vec4) (memory.Array[math.Vec4], error) {
	if err != nil {
		return nil, err
	}
	if dense, ok := arr.(interface {
		AsVector4() memory.MutableArray[math.Vec4]
	}); ok {
		return dense.AsVector4(), nil
	}
	return memory.AsVector4(arr, widen), nil
}

// AsIndicesArray resolves a SCALAR accessor of unsigned integers.
func (a *Accessor) AsIndicesArray() (memory.Array[uint32], error) {
	if a.Dimensions != memory.Scalar || !a.Encoding.IsUnsigned() {
		return nil, fmt.Errorf("%w: accessor %d is %s %s, not unsigned SCALAR", ErrInvalidValue, a.index, a.Dimensions, a.Encoding)
	}
	base, err := a.dense(false)
	if err != nil {
		return nil, err
	}
	dense := base.AsIntegerArray()
	if a.Sparse == nil {
		return dense, nil
	}
	values, indices, err := a.sparseParts(false)
	if err != nil {
		return nil, err
	}
	top := values.AsIntegerArray()
	return memory.NewSparseArray[uint32](dense, top, indices), nil
}

// UpdateBounds recomputes Min and Max from the data, sparse block included.
// Bounds are expressed in the component type, so normalized integers report
// their raw values.
func (a *Accessor) UpdateBounds() error {
	r, err := a.Components()
	if err != nil {
		return err
	}
	a.Min, a.Max = memory.Bounds(r)
	return nil
}

// Components reads the raw component values, sparse replacements applied
// and normalization ignored.
func (a *Accessor) Components() (memory.ComponentReader, error) {
	base, err := a.dense(false)
	if err != nil {
		return nil, err
	}
	if a.Sparse == nil {
		return base, nil
	}
	values, indices, err := a.sparseParts(false)
	if err != nil {
		return nil, err
	}
	return memory.NewSparseComponents(base, values, indices), nil
}

func resolveArray[T any](a *Accessor, dims memory.Dimensions, wrap func(memory.ElementArray) memory.MutableArray[T]) (memory.Array[T], error) {
	if a.Dimensions != dims {
		return nil, fmt.Errorf("%w: accessor %d is %s, not %s", ErrInvalidValue, a.index, a.Dimensions, dims)
	}
	base, err := a.dense(a.Normalized)
	if err != nil {
		return nil, err
	}
	if a.Sparse == nil {
		return wrap(base), nil
	}
	values, indices, err := a.sparseParts(a.Normalized)
	if err != nil {
		return nil, err
	}
	return memory.NewSparseArray[T](wrap(base), wrap(values), indices), nil
}

// checkLayout reports layout errors that would make package memory panic.
func (a *Accessor) checkLayout() error {
	switch {
	case !a.Encoding.IsValid():
		return fmt.Errorf("%w: accessor %d has componentType %d", ErrInvalidValue, a.index, a.Encoding)
	case !a.Dimensions.IsValid():
		return fmt.Errorf("%w: accessor %d has invalid type", ErrInvalidValue, a.index)
	case a.Count < 0 || a.ByteOffset < 0:
		return fmt.Errorf("%w: accessor %d has negative count or offset", ErrInvalidValue, a.index)
	case int64(a.Count) > a.MaxCount():
		return fmt.Errorf("%w: accessor %d count %d exceeds %d elements", ErrInvalidValue, a.index, a.Count, a.MaxCount())
	}
	return nil
}

// dense resolves the accessor's own view, or a zero block when it has none.
func (a *Accessor) dense(normalized bool) (memory.ElementArray, error) {
	if err := a.checkLayout(); err != nil {
		return memory.ElementArray{}, err
	}
	if a.bufferView < 0 {
		return memory.NewZeroArray(a.Count, a.Dimensions, a.Encoding, normalized), nil
	}
	view := a.BufferView()
	if view == nil {
		return memory.ElementArray{}, fmt.Errorf("%w: accessor %d references bufferView %d", ErrInvalidReference, a.index, a.bufferView)
	}
	return viewArray(view, a.ByteOffset, view.ByteStride, a.Count, a.Dimensions, a.Encoding, normalized, "accessor", a.index)
}

// sparseParts resolves the replacement values and their indices.
func (a *Accessor) sparseParts(normalized bool) (memory.ElementArray, memory.IntegerArray, error) {
	s := a.Sparse
	if !s.IndicesEncoding.IsUnsigned() {
		return memory.ElementArray{}, memory.IntegerArray{}, fmt.Errorf("%w: accessor %d sparse indices componentType %d", ErrInvalidValue, a.index, s.IndicesEncoding)
	}
	iv := at(a.doc.bufferViews, s.indicesView)
	vv := at(a.doc.bufferViews, s.valuesView)
	if iv == nil || vv == nil {
		return memory.ElementArray{}, memory.IntegerArray{}, fmt.Errorf("%w: accessor %d sparse buffer views %d, %d", ErrInvalidReference, a.index, s.indicesView, s.valuesView)
	}
	ie, err := viewArray(iv, s.IndicesByteOffset, 0, s.Count, memory.Scalar, s.IndicesEncoding, false, "sparse indices of accessor", a.index)
	if err != nil {
		return memory.ElementArray{}, memory.IntegerArray{}, err
	}
	values, err := viewArray(vv, s.ValuesByteOffset, 0, s.Count, a.Dimensions, a.Encoding, normalized, "sparse values of accessor", a.index)
	if err != nil {
		return memory.ElementArray{}, memory.IntegerArray{}, err
	}
	indices := ie.AsIntegerArray()
	for k := 0; k < indices.Len(); k++ {
		if int(indices.At(k)) >= a.Count {
			return memory.ElementArray{}, memory.IntegerArray{}, fmt.Errorf("%w: accessor %d sparse index %d >= count %d", ErrDataOutOfRange, a.index, indices.At(k), a.Count)
		}
	}
	return values, indices, nil
}

// viewArray builds an element array over view and checks that count
// elements fit.
func viewArray(view *BufferView, byteOffset, byteStride, count int, dims memory.Dimensions, enc memory.Encoding, normalized bool, what string, index int) (memory.ElementArray, error) {
	content, err := view.Content()
	if err != nil {
		return memory.ElementArray{}, err
	}
	size := memory.ElementByteLength(dims, enc)
	if byteStride != 0 && byteStride < size {
		return memory.ElementArray{}, fmt.Errorf("%w: %s %d stride %d < element size %d", ErrInvalidValue, what, index, byteStride, size)
	}
	if byteOffset < 0 || byteOffset > len(content) {
		return memory.ElementArray{}, fmt.Errorf("%w: %s %d offset %d", ErrDataOutOfRange, what, index, byteOffset)
	}
	e := memory.NewElementArray(content, byteOffset, count, byteStride, dims, enc, normalized)
	if e.Len() < count {
		return memory.ElementArray{}, fmt.Errorf("%w: %s %d needs %d elements, view %d holds %d",
			ErrDataOutOfRange, what, index, count, view.index, e.Len())
	}
	return e, nil
}
