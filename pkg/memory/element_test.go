package memory

import (
	"encoding/binary"
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-gltf/pkg/math"
)

func float32Bytes(values ...float32) []byte {
	b := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[4*i:], stdmath.Float32bits(v))
	}
	return b
}

func TestFitCount(t *testing.T) {
	tests := []struct {
		name                              string
		available, stride, size, requested int
		want                              int
	}{
		{"packed", 12, 4, 4, -1, 3},
		{"trailing partial stride", 20, 8, 4, -1, 3},
		{"trailing too short", 18, 8, 4, -1, 2},
		{"capped by request", 40, 4, 4, 2, 2},
		{"request above fit", 8, 4, 4, 9, 2},
		{"too small", 3, 4, 4, -1, 0},
		{"zero stride", 16, 0, 4, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitCount(tt.available, tt.stride, tt.size, tt.requested))
		})
	}
}

func TestNormalizedUnsignedByteRoundTrip(t *testing.T) {
	data := make([]byte, 4)
	arr := NewVector4Array(data, 0, 1, 0, UnsignedByte, true)
	require.Equal(t, 1, arr.Len())

	arr.Set(0, math.Vec4{1, 0, 1, 0})
	assert.Equal(t, []byte{255, 0, 255, 0}, data)
	assert.Equal(t, math.Vec4{1, 0, 1, 0}, arr.At(0))
}

func TestNormalizedHalfRoundsUp(t *testing.T) {
	data := make([]byte, 1)
	arr := NewScalarArray(data, 0, 1, 0, UnsignedByte, true)
	arr.Set(0, 0.5)
	assert.Equal(t, byte(128), data[0])
	assert.Equal(t, float32(128)/255, arr.At(0))
}

func TestNormalizedClamping(t *testing.T) {
	data := make([]byte, 2)
	arr := NewScalarArray(data, 0, 2, 0, Byte, true)
	arr.Set(0, -2)
	arr.Set(1, 3)
	assert.Equal(t, byte(0x81), data[0]) // -127
	assert.Equal(t, byte(127), data[1])

	data[0] = byte(0x80) // -128 decodes to -1, not below
	assert.Equal(t, float32(-1), arr.At(0))
}

func TestSignedShortNormalized(t *testing.T) {
	data := make([]byte, 4)
	arr := NewVector2Array(data, 0, 1, 0, Short, true)
	arr.Set(0, math.Vec2{X: -1, Y: 1})
	assert.Equal(t, int16(-32767), int16(binary.LittleEndian.Uint16(data)))
	assert.Equal(t, int16(32767), int16(binary.LittleEndian.Uint16(data[2:])))
	assert.Equal(t, math.Vec2{X: -1, Y: 1}, arr.At(0))
}

func TestNonNormalizedIntegers(t *testing.T) {
	data := make([]byte, 6)
	arr := NewVector3Array(data, 0, 1, 0, UnsignedShort, false)
	arr.Set(0, math.Vec3{X: 1.4, Y: 2.5, Z: 70000})
	assert.Equal(t, math.Vec3{X: 1, Y: 3, Z: 65535}, arr.At(0))
}

func TestStridedView(t *testing.T) {
	// Interleaved position (vec3) + one float of padding.
	data := float32Bytes(
		1, 2, 3, 99,
		4, 5, 6, 99,
		7, 8, 9,
	)
	arr := NewVector3Array(data, 0, -1, 16, Float, false)
	require.Equal(t, 3, arr.Len())
	assert.Equal(t, math.Vec3{X: 7, Y: 8, Z: 9}, arr.At(2))

	arr.Set(1, math.Vec3{X: -4, Y: -5, Z: -6})
	assert.Equal(t, float32(99), stdmath.Float32frombits(binary.LittleEndian.Uint32(data[28:])))
	assert.Equal(t, math.Vec3{X: -4, Y: -5, Z: -6}, arr.At(1))
}

func TestOffsetPastEndIsEmpty(t *testing.T) {
	arr := NewScalarArray(make([]byte, 8), 12, -1, 0, Float, false)
	assert.Equal(t, 0, arr.Len())
}

func TestNewElementArrayPanics(t *testing.T) {
	assert.Panics(t, func() { NewElementArray(nil, 0, 0, 0, Vec3, Encoding(1), false) })
	assert.Panics(t, func() { NewElementArray(nil, 0, 0, 0, Dimensions(0), Float, false) })
	assert.Panics(t, func() { NewElementArray(nil, -1, 0, 0, Scalar, Float, false) })
	assert.Panics(t, func() { NewElementArray(make([]byte, 12), 0, 0, 8, Vec3, Float, false) })
}

func TestIndexOutOfRangePanics(t *testing.T) {
	arr := NewScalarArray(make([]byte, 4), 0, 1, 0, Float, false)
	assert.Panics(t, func() { arr.At(1) })
	assert.Panics(t, func() { arr.Component(0, 1) })
}

func TestMatrixColumnPadding(t *testing.T) {
	assert.Equal(t, 8, ElementByteLength(Mat2, UnsignedByte))
	assert.Equal(t, 12, ElementByteLength(Mat3, UnsignedByte))
	assert.Equal(t, 24, ElementByteLength(Mat3, UnsignedShort))
	assert.Equal(t, 64, ElementByteLength(Mat4, Float))

	// MAT2 of bytes: column 0 at bytes 0..1, column 1 at bytes 4..5.
	data := []byte{1, 2, 0, 0, 3, 4, 0, 0}
	arr := NewElementArray(data, 0, 1, 0, Mat2, UnsignedByte, false)
	got := []float32{arr.Component(0, 0), arr.Component(0, 1), arr.Component(0, 2), arr.Component(0, 3)}
	assert.Equal(t, []float32{1, 2, 3, 4}, got)
}

func TestMatrix4x4Array(t *testing.T) {
	m := math.Translate(1, 2, 3)
	data := make([]byte, 64)
	arr := NewMatrix4x4Array(data, 0, 1, 0, Float, false)
	arr.Set(0, m)
	assert.Equal(t, m, arr.At(0))
	assert.Equal(t, float32(1), stdmath.Float32frombits(binary.LittleEndian.Uint32(data[48:])))
}

func TestShapeConversion(t *testing.T) {
	e := NewElementArray(make([]byte, 16), 0, -1, 0, Vec4, Float, false)
	assert.NotPanics(t, func() { e.AsVector4Array() })
	assert.NotPanics(t, func() { e.AsQuaternionArray() })
	assert.Panics(t, func() { e.AsVector3Array() })
	assert.Panics(t, func() { e.AsScalarArray() })
}

func TestAsVector4Adapter(t *testing.T) {
	data := float32Bytes(1, 2, 3)
	v3 := NewVector3Array(data, 0, -1, 0, Float, false)
	v4 := v3.AsVector4()
	assert.Equal(t, math.Vec4{1, 2, 3, 0}, v4.At(0))

	v4.Set(0, math.Vec4{7, 8, 9, 10})
	assert.Equal(t, math.Vec3{X: 7, Y: 8, Z: 9}, v3.At(0))

	q := NewQuaternionArray(float32Bytes(0, 0, 0, 1), 0, -1, 0, Float, false)
	assert.Equal(t, math.QuatIdentity(), q.At(0))
	assert.Equal(t, math.Vec4{0, 0, 0, 1}, q.AsVector4().At(0))
}

func TestCopyToAndFill(t *testing.T) {
	arr := NewScalarArray(make([]byte, 12), 0, -1, 0, Float, false)
	assert.Equal(t, 3, Fill[float32](arr, []float32{1, 2, 3, 4}))
	out := make([]float32, 2)
	assert.Equal(t, 2, CopyTo[float32](arr, out))
	assert.Equal(t, []float32{1, 2}, out)
	assert.Equal(t, []float32{1, 2, 3}, ToSlice[float32](arr))
}

func TestZeroArray(t *testing.T) {
	arr := NewZeroArray(1<<30, Vec3, Float, false)
	assert.Equal(t, 1<<30, arr.Len())
	assert.Equal(t, 0, arr.ByteStride())
	assert.Equal(t, math.Vec3{}, arr.AsVector3Array().At(1<<30-1))
	assert.Panics(t, func() { arr.Component(1<<30, 0) })

	empty := NewZeroArray(0, Scalar, UnsignedByte, false)
	assert.Equal(t, 0, empty.Len())
	assert.Panics(t, func() { NewZeroArray(-1, Scalar, Float, false) })
}
