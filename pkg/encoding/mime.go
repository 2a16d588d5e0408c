package encoding

import (
	"github.com/gabriel-vasile/mimetype"
)

// DetectImageMIME sniffs the MIME type of an image payload. Unknown content
// reports application/octet-stream.
func DetectImageMIME(data []byte) string {
	if len(data) == 0 {
		return MIMEOctetStream
	}
	m := mimetype.Detect(data)
	for ; m != nil; m = m.Parent() {
		if m.Is(MIMEPNG) || m.Is(MIMEJPEG) || m.Is("image/webp") || m.Is("image/ktx2") {
			return m.String()
		}
	}
	return MIMEOctetStream
}

// IsImageMIME reports whether mime names an image type that may be embedded
// in a glTF file.
func IsImageMIME(mime string) bool {
	switch mime {
	case MIMEPNG, MIMEJPEG, "image/webp", "image/ktx2":
		return true
	}
	return false
}

// ImageExtension returns the file extension, with dot, for an image MIME
// type. Unknown types map to ".bin".
func ImageExtension(mime string) string {
	switch mime {
	case MIMEPNG:
		return ".png"
	case MIMEJPEG:
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/ktx2":
		return ".ktx2"
	}
	return ".bin"
}
