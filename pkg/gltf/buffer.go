package gltf

import "fmt"

// BufferTarget hints the GPU binding of a buffer view.
type BufferTarget int

const (
	TargetNone               BufferTarget = 0
	TargetArrayBuffer        BufferTarget = 34962
	TargetElementArrayBuffer BufferTarget = 34963
)

// IsValid reports whether t is unset or one of the two glTF targets.
func (t BufferTarget) IsValid() bool {
	return t == TargetNone || t == TargetArrayBuffer || t == TargetElementArrayBuffer
}

// Buffer is a block of binary data. Its byte length is always the length of
// Content. Where the bytes came from (data URI, external file, GLB chunk) is
// not recorded.
type Buffer struct {
	slot
	Properties
	Name    string
	Content []byte
}

// ByteLength returns len(Content).
func (b *Buffer) ByteLength() int {
	return len(b.Content)
}

// CreateBuffer appends a zero-filled buffer of byteCount bytes.
func (d *Document) CreateBuffer(byteCount int) *Buffer {
	return d.addBuffer(make([]byte, byteCount))
}

// UseBuffer returns the buffer whose Content is exactly content (same
// backing array, same length), appending a new one when none matches. The
// buffer aliases content.
func (d *Document) UseBuffer(content []byte) *Buffer {
	if len(content) > 0 {
		for _, b := range d.buffers {
			if len(b.Content) == len(content) && &b.Content[0] == &content[0] {
				return b
			}
		}
	}
	return d.addBuffer(content)
}

func (d *Document) addBuffer(content []byte) *Buffer {
	b := &Buffer{slot: slot{d, len(d.buffers)}, Content: content}
	d.buffers = append(d.buffers, b)
	return b
}

// BufferView is a byte range of a buffer.
type BufferView struct {
	slot
	Properties
	Name       string
	buffer     int
	ByteOffset int
	ByteLength int
	// ByteStride is 0 for tightly packed or non-vertex data.
	ByteStride int
	Target     BufferTarget
}

// CreateBufferView appends a view over buffer[byteOffset:byteOffset+byteLength].
func (d *Document) CreateBufferView(buffer *Buffer, byteOffset, byteLength, byteStride int, target BufferTarget) *BufferView {
	v := &BufferView{
		slot:       slot{d, len(d.bufferViews)},
		buffer:     d.ref(buffer),
		ByteOffset: byteOffset,
		ByteLength: byteLength,
		ByteStride: byteStride,
		Target:     target,
	}
	d.bufferViews = append(d.bufferViews, v)
	return v
}

// UseBufferView returns a view covering all of content, reusing the buffer
// that already holds content and an existing view with the same range,
// stride and target.
func (d *Document) UseBufferView(content []byte, byteStride int, target BufferTarget) *BufferView {
	b := d.UseBuffer(content)
	for _, v := range d.bufferViews {
		if v.buffer == b.index && v.ByteOffset == 0 && v.ByteLength == len(content) &&
			v.ByteStride == byteStride && v.Target == target {
			return v
		}
	}
	return d.CreateBufferView(b, 0, len(content), byteStride, target)
}

// Buffer returns the viewed buffer, or nil when the reference is out of
// range.
func (v *BufferView) Buffer() *Buffer {
	return at(v.doc.buffers, v.buffer)
}

// BufferIndex returns the raw buffer reference.
func (v *BufferView) BufferIndex() int {
	return v.buffer
}

// SetBuffer points the view at another buffer of the same document.
func (v *BufferView) SetBuffer(b *Buffer) {
	v.buffer = v.doc.ref(b)
}

// Content returns the viewed bytes. The slice aliases the buffer.
func (v *BufferView) Content() ([]byte, error) {
	b := v.Buffer()
	if b == nil {
		return nil, fmt.Errorf("%w: bufferView %d references buffer %d", ErrInvalidReference, v.index, v.buffer)
	}
	if v.ByteOffset < 0 || v.ByteLength < 0 || v.ByteOffset > len(b.Content) || v.ByteLength > len(b.Content)-v.ByteOffset {
		return nil, fmt.Errorf("%w: bufferView %d of %d bytes at offset %d exceeds buffer %d of %d bytes",
			ErrDataOutOfRange, v.index, v.ByteLength, v.ByteOffset, v.buffer, len(b.Content))
	}
	return b.Content[v.ByteOffset : v.ByteOffset+v.ByteLength], nil
}
