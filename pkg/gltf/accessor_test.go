package gltf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-gltf/pkg/math"
	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

func TestTriangleAccessors(t *testing.T) {
	tri := newTriangle(t)

	positions, err := tri.positions.AsVector3Array()
	require.NoError(t, err)
	assert.Equal(t, []math.Vec3{{}, {X: 1}, {Y: 1}}, memory.ToSlice(positions))
	assert.Equal(t, []float64{0, 0, 0}, tri.positions.Min)
	assert.Equal(t, []float64{1, 1, 0}, tri.positions.Max)

	indices, err := tri.indices.AsIndicesArray()
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, memory.ToSlice(indices))

	_, err = tri.positions.AsScalarArray()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAccessorWritesThroughToBuffer(t *testing.T) {
	tri := newTriangle(t)
	positions, err := tri.positions.AsVector3Array()
	require.NoError(t, err)

	mutable, ok := positions.(memory.MutableArray[math.Vec3])
	require.True(t, ok)
	mutable.Set(2, math.Vec3{X: 5, Y: 6, Z: 7})

	again, err := tri.positions.AsVector3Array()
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: 5, Y: 6, Z: 7}, again.At(2))
}

func TestAccessorDoesNotFitView(t *testing.T) {
	tri := newTriangle(t)
	tri.positions.Count = 4

	_, err := tri.positions.AsVector3Array()
	assert.ErrorIs(t, err, ErrDataOutOfRange)
}

func TestZeroAccessor(t *testing.T) {
	d := NewDocument()
	a := d.CreateAccessor("zeros")
	a.SetZeros(3, memory.Vec2, memory.Float, false)

	arr, err := a.AsVector2Array()
	require.NoError(t, err)
	assert.Equal(t, []math.Vec2{{}, {}, {}}, memory.ToSlice(arr))
}

func TestZeroAccessorCount(t *testing.T) {
	d := NewDocument()
	a := d.CreateAccessor("zeros")
	a.SetZeros(1<<28, memory.Vec3, memory.Float, false)
	assert.Equal(t, int64(357913941), a.MaxCount())

	arr, err := a.AsVector3Array()
	require.NoError(t, err)
	assert.Equal(t, 1<<28, arr.Len())
	assert.Equal(t, math.Vec3{}, arr.At(1<<28-1))

	a.Count = 357913942
	_, err = a.AsVector3Array()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAsVector4View(t *testing.T) {
	d := NewDocument()
	buf := d.CreateBuffer(24)
	view := d.CreateBufferView(buf, 0, 24, 0, TargetNone)

	pairs := d.CreateAccessor("pairs")
	pairs.SetVertexData(view, 0, 3, memory.Vec2, memory.Float, false)
	v4, err := pairs.AsVector4View()
	require.NoError(t, err)
	require.Equal(t, 3, v4.Len())

	mutable, ok := v4.(memory.MutableArray[math.Vec4])
	require.True(t, ok)
	mutable.Set(1, math.Vec4{5, 6, 7, 8})
	assert.Equal(t, math.Vec4{5, 6, 0, 0}, v4.At(1))

	v2, err := pairs.AsVector2Array()
	require.NoError(t, err)
	assert.Equal(t, math.Vec2{X: 5, Y: 6}, v2.At(1))

	scalars := d.CreateAccessor("scalars")
	scalars.SetVertexData(view, 8, 1, memory.Scalar, memory.Float, false)
	s4, err := scalars.AsVector4View()
	require.NoError(t, err)
	assert.Equal(t, math.Vec4{5, 0, 0, 0}, s4.At(0))

	_, sparse := sparseDocument(t)
	sp4, err := sparse.AsVector4View()
	require.NoError(t, err)
	assert.Equal(t, math.Vec4{99, 0, 0, 0}, sp4.At(2))
	assert.Equal(t, math.Vec4{40, 0, 0, 0}, sp4.At(3))

	matrices := d.CreateAccessor("matrices")
	matrices.SetZeros(1, memory.Mat4, memory.Float, false)
	_, err = matrices.AsVector4View()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

// sparseDocument builds an accessor over [10, 20, 30, 40] with index 2
// replaced by 99.
func sparseDocument(t *testing.T) (*Document, *Accessor) {
	t.Helper()
	d := NewDocument()
	buf := d.CreateBuffer(24)
	memory.Fill[float32](memory.NewScalarArray(buf.Content, 0, 4, 0, memory.Float, false), []float32{10, 20, 30, 40})
	buf.Content[16] = 2
	memory.NewScalarArray(buf.Content, 20, 1, 0, memory.Float, false).Set(0, 99)

	base := d.CreateBufferView(buf, 0, 16, 0, TargetNone)
	indices := d.CreateBufferView(buf, 16, 1, 0, TargetNone)
	values := d.CreateBufferView(buf, 20, 4, 0, TargetNone)

	a := d.CreateAccessor("sparse")
	a.SetVertexData(base, 0, 4, memory.Scalar, memory.Float, false)
	a.SetSparse(1, indices, 0, memory.UnsignedByte, values, 0)
	return d, a
}

func TestSparseAccessor(t *testing.T) {
	_, a := sparseDocument(t)

	arr, err := a.AsScalarArray()
	require.NoError(t, err)
	assert.Equal(t, []float32{10, 20, 99, 40}, memory.ToSlice(arr))

	dense, err := a.AsElementArray()
	require.NoError(t, err)
	assert.Equal(t, float32(30), dense.Component(2, 0))

	require.NoError(t, a.UpdateBounds())
	assert.Equal(t, []float64{10}, a.Min)
	assert.Equal(t, []float64{99}, a.Max)
}

func TestSparseIndexOutOfRange(t *testing.T) {
	d, a := sparseDocument(t)
	d.Buffers()[0].Content[16] = 9

	_, err := a.AsScalarArray()
	assert.ErrorIs(t, err, ErrDataOutOfRange)
}

func TestUseBufferDeduplicates(t *testing.T) {
	d := NewDocument()
	content := make([]byte, 8)

	b1 := d.UseBuffer(content)
	b2 := d.UseBuffer(content)
	b3 := d.UseBuffer(make([]byte, 8))
	assert.Same(t, b1, b2)
	assert.NotSame(t, b1, b3)

	v1 := d.UseBufferView(content, 0, TargetArrayBuffer)
	v2 := d.UseBufferView(content, 0, TargetArrayBuffer)
	v3 := d.UseBufferView(content, 4, TargetArrayBuffer)
	assert.Same(t, v1, v2)
	assert.NotSame(t, v1, v3)
	assert.Len(t, d.Buffers(), 2)
}

func TestBufferViewContentOutOfRange(t *testing.T) {
	d := NewDocument()
	v := d.CreateBufferView(d.CreateBuffer(4), 2, 4, 0, TargetNone)
	_, err := v.Content()
	assert.ErrorIs(t, err, ErrDataOutOfRange)
}

func TestForeignEntityPanics(t *testing.T) {
	d1, d2 := NewDocument(), NewDocument()
	parent := d1.CreateNode("parent")
	stranger := d2.CreateNode("stranger")

	assert.Panics(t, func() { parent.AddChild(stranger) })
	assert.Panics(t, func() { parent.SetMesh(d2.CreateMesh("m")) })
	assert.NotPanics(t, func() { parent.SetMesh(nil) })
}
