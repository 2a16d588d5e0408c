package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MIME types accepted in glTF data URIs.
const (
	MIMEOctetStream = "application/octet-stream"
	MIMEGLTFBuffer  = "application/gltf-buffer"
	MIMEPNG         = "image/png"
	MIMEJPEG        = "image/jpeg"
)

// BufferMIMETypes are the data URI types a buffer may use.
var BufferMIMETypes = []string{MIMEOctetStream, MIMEGLTFBuffer}

// ImageMIMETypes are the data URI types an image may use. Images also
// accept the buffer types.
var ImageMIMETypes = []string{MIMEPNG, MIMEJPEG, MIMEOctetStream, MIMEGLTFBuffer}

var (
	ErrNotDataURI      = errors.New("encoding: not a data URI")
	ErrInvalidDataURI  = errors.New("encoding: malformed data URI")
	ErrUnsupportedMIME = errors.New("encoding: unsupported data URI type")
)

const dataScheme = "data:"

// IsDataURI reports whether uri uses the data: scheme.
func IsDataURI(uri string) bool {
	return len(uri) >= len(dataScheme) && strings.EqualFold(uri[:len(dataScheme)], dataScheme)
}

// DecodeDataURI decodes a base64 data URI and returns its MIME type and
// payload. When allowed is non-empty the MIME type must be one of them.
func DecodeDataURI(uri string, allowed ...string) (string, []byte, error) {
	if !IsDataURI(uri) {
		return "", nil, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(uri[len(dataScheme):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing ','", ErrInvalidDataURI)
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}
	if len(allowed) > 0 && !slices.Contains(allowed, mime) {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedMIME, mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mime, data, nil
}

// EncodeDataURI builds a base64 data URI.
func EncodeDataURI(mime string, data []byte) string {
	var b strings.Builder
	b.Grow(len(dataScheme) + len(mime) + len(";base64,") + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(dataScheme)
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
