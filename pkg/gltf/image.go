package gltf

import (
	"fmt"

	"github.com/Faultbox/midgard-gltf/pkg/encoding"
)

// Image is texture source data, held either as its own bytes (read from a
// data URI or an external file) or as a buffer view.
type Image struct {
	slot
	Properties
	Name       string
	MimeType   string
	bufferView int
	content    []byte
}

// CreateImage appends an image with no data.
func (d *Document) CreateImage(name string) *Image {
	img := &Image{slot: slot{d, len(d.images)}, Name: name, bufferView: -1}
	d.images = append(d.images, img)
	return img
}

// SetContent stores the image bytes directly and detects the MIME type
// from them.
func (img *Image) SetContent(data []byte) {
	img.bufferView = -1
	img.content = data
	img.MimeType = encoding.DetectImageMIME(data)
}

// SetBufferView stores the image in a buffer view. mimeType is required by
// glTF for buffer view images.
func (img *Image) SetBufferView(v *BufferView, mimeType string) {
	img.bufferView = img.doc.ref(v)
	img.content = nil
	img.MimeType = mimeType
}

// BufferView returns the backing buffer view, or nil.
func (img *Image) BufferView() *BufferView { return at(img.doc.bufferViews, img.bufferView) }

// BufferViewIndex returns the raw buffer view reference, -1 when absent.
func (img *Image) BufferViewIndex() int { return img.bufferView }

// HasContent reports whether the image holds its own bytes.
func (img *Image) HasContent() bool { return img.content != nil }

// Content returns the image bytes from whichever source the image uses.
func (img *Image) Content() ([]byte, error) {
	if img.bufferView < 0 {
		if img.content == nil {
			return nil, fmt.Errorf("%w: image %d has no data", ErrInvalidValue, img.index)
		}
		return img.content, nil
	}
	v := img.BufferView()
	if v == nil {
		return nil, fmt.Errorf("%w: image %d references bufferView %d", ErrInvalidReference, img.index, img.bufferView)
	}
	return v.Content()
}

// ResolvedMimeType returns MimeType, or the type sniffed from the content
// when MimeType is empty.
func (img *Image) ResolvedMimeType() string {
	if img.MimeType != "" {
		return img.MimeType
	}
	data, err := img.Content()
	if err != nil {
		return encoding.MIMEOctetStream
	}
	return encoding.DetectImageMIME(data)
}
