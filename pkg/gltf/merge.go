package gltf

import (
	"fmt"
	"slices"
)

// MergeBuffers rewrites the document to use a single buffer holding every
// buffer view's bytes. Views are laid out largest first (ties by index),
// each starting on a 4-byte boundary. Accessors are untouched because they
// address views, not buffers.
//
// Bytes no view addresses are dropped, so a document without views ends up
// with no buffers. Nothing is changed when an error is returned. Typed
// arrays resolved before the merge keep addressing the old buffers.
func (d *Document) MergeBuffers() error {
	if len(d.bufferViews) == 0 {
		d.buffers = nil
		return nil
	}

	order := slices.Clone(d.bufferViews)
	slices.SortStableFunc(order, func(a, b *BufferView) int {
		if a.ByteLength != b.ByteLength {
			return b.ByteLength - a.ByteLength
		}
		return a.index - b.index
	})

	total := 0
	for _, v := range order {
		total = align4(total) + v.ByteLength
	}
	merged := make([]byte, 0, total)
	offsets := make([]int, len(d.bufferViews))
	for _, v := range order {
		content, err := v.Content()
		if err != nil {
			return fmt.Errorf("gltf: merge buffers: %w", err)
		}
		merged = append(merged, make([]byte, align4(len(merged))-len(merged))...)
		offsets[v.index] = len(merged)
		merged = append(merged, content...)
	}

	name := ""
	for _, b := range d.buffers {
		if b.Name != "" {
			name = b.Name
			break
		}
	}
	d.buffers = []*Buffer{{slot: slot{d, 0}, Name: name, Content: merged}}
	for _, v := range d.bufferViews {
		v.buffer = 0
		v.ByteOffset = offsets[v.index]
	}
	return nil
}

func align4(n int) int {
	return (n + 3) &^ 3
}
