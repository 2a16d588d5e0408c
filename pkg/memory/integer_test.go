package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegerArray(t *testing.T) {
	data := make([]byte, 6)
	arr := NewIntegerArray(data, 0, -1, 0, UnsignedShort)
	assert.Equal(t, 3, arr.Len())

	arr.Set(0, 0)
	arr.Set(1, 65535)
	arr.Set(2, 7)
	assert.Equal(t, uint32(65535), arr.At(1))
	assert.Equal(t, uint32(65535), arr.Max())
	assert.Panics(t, func() { arr.Set(0, 65536) })
}

func TestIntegerArrayRejectsSignedEncoding(t *testing.T) {
	assert.Panics(t, func() { NewIntegerArray(nil, 0, 0, 0, Short) })
	assert.Panics(t, func() { NewIntegerArray(nil, 0, 0, 0, Float) })
}
