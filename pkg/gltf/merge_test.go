package gltf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

func TestMergeBuffers(t *testing.T) {
	d := NewDocument()
	a := d.UseBuffer([]byte{1, 2, 3, 4, 5, 6})
	b := d.UseBuffer([]byte{7, 8, 9, 10, 11, 12, 13, 14})
	b.Name = "second"
	small := d.CreateBufferView(a, 0, 6, 0, TargetNone)
	large := d.CreateBufferView(b, 0, 8, 0, TargetNone)

	acc := d.CreateAccessor("bytes")
	acc.SetVertexData(small, 0, 6, memory.Scalar, memory.UnsignedByte, false)

	require.NoError(t, d.MergeBuffers())
	require.Len(t, d.Buffers(), 1)
	merged := d.Buffers()[0]
	assert.Equal(t, "second", merged.Name)
	assert.Equal(t, 14, merged.ByteLength())

	assert.Equal(t, 0, large.ByteOffset)
	assert.Equal(t, 8, small.ByteOffset)
	assert.Same(t, merged, small.Buffer())
	assert.Same(t, merged, large.Buffer())

	content, err := small.Content()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, content)

	values, err := acc.AsScalarArray()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, memory.ToSlice(values))
	assert.False(t, d.Validate(nil, ValidateContent).HasErrors())
}

func TestMergeBuffersAlignsAndBreaksTiesByIndex(t *testing.T) {
	d := NewDocument()
	buf := d.CreateBuffer(11)
	first := d.CreateBufferView(buf, 0, 3, 0, TargetNone)
	longest := d.CreateBufferView(buf, 3, 5, 0, TargetNone)
	third := d.CreateBufferView(buf, 8, 3, 0, TargetNone)

	require.NoError(t, d.MergeBuffers())
	assert.Equal(t, 0, longest.ByteOffset)
	assert.Equal(t, 8, first.ByteOffset)
	assert.Equal(t, 12, third.ByteOffset)
	assert.Equal(t, 15, d.Buffers()[0].ByteLength())
}

func TestMergeBuffersIsAtomic(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},
		"buffers":[
			{"byteLength":4,"uri":"data:application/octet-stream;base64,AQIDBA=="},
			{"byteLength":4,"uri":"data:application/octet-stream;base64,BQYHCA=="}
		],
		"bufferViews":[
			{"buffer":0,"byteLength":4},
			{"buffer":1,"byteOffset":2,"byteLength":4}
		]}`)

	err := d.MergeBuffers()
	require.ErrorIs(t, err, ErrDataOutOfRange)
	require.Len(t, d.Buffers(), 2)
	assert.Equal(t, []byte{1, 2, 3, 4}, d.Buffers()[0].Content)
	assert.Equal(t, 1, d.BufferViews()[1].BufferIndex())
	assert.Equal(t, 2, d.BufferViews()[1].ByteOffset)
}

func TestMergeBuffersWithoutViews(t *testing.T) {
	d := NewDocument()
	d.CreateBuffer(4)
	d.UseBuffer([]byte{1, 2})
	d.CreateNode("n")

	data, err := d.EncodeBinary(&WriteSettings{MergeBuffers: true})
	require.NoError(t, err)
	assert.Len(t, d.Buffers(), 2)
	decoded, err := DecodeBinary(data, nil)
	require.NoError(t, err)
	assert.Empty(t, decoded.Buffers())
	assert.Len(t, decoded.Nodes(), 1)

	require.NoError(t, d.MergeBuffers())
	assert.Empty(t, d.Buffers())
	require.NoError(t, NewDocument().MergeBuffers())
}
