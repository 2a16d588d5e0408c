package encoding

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain", []byte(`{"a":1}`), `{"a":1}`},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, `{"a":1}`...), `{"a":1}`},
		{"utf16le bom", []byte{0xFF, 0xFE, '{', 0, '}', 0}, `{}`},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.input)
			if err != nil {
				t.Fatalf("DecodeText() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("DecodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	payload := []byte{0, 1, 2, 3, 250}
	uri := EncodeDataURI(MIMEOctetStream, payload)
	if uri != "data:application/octet-stream;base64,AAECA/o=" {
		t.Errorf("EncodeDataURI() = %q", uri)
	}

	mime, data, err := DecodeDataURI(uri, BufferMIMETypes...)
	if err != nil {
		t.Fatalf("DecodeDataURI() error = %v", err)
	}
	if mime != MIMEOctetStream {
		t.Errorf("mime = %q, want %q", mime, MIMEOctetStream)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("data = %v, want %v", data, payload)
	}
}

func TestDecodeDataURIErrors(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		allowed []string
		want    error
	}{
		{"relative path", "buffer.bin", nil, ErrNotDataURI},
		{"no comma", "data:application/octet-stream;base64", nil, ErrInvalidDataURI},
		{"not base64", "data:text/plain,hello", nil, ErrInvalidDataURI},
		{"bad payload", "data:application/gltf-buffer;base64,!!!", nil, ErrInvalidDataURI},
		{"image as buffer", "data:image/png;base64,AAAA", BufferMIMETypes, ErrUnsupportedMIME},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeDataURI(tt.uri, tt.allowed...)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeDataURI() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImageURIAcceptsPNG(t *testing.T) {
	mime, _, err := DecodeDataURI("data:image/png;base64,AAAA", ImageMIMETypes...)
	if err != nil || mime != MIMEPNG {
		t.Errorf("DecodeDataURI() = %q, %v", mime, err)
	}
}

func TestDetectImageMIME(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", png, MIMEPNG},
		{"jpeg", jpeg, MIMEJPEG},
		{"garbage", []byte{1, 2, 3, 4}, MIMEOctetStream},
		{"empty", nil, MIMEOctetStream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectImageMIME(tt.data); got != tt.want {
				t.Errorf("DetectImageMIME() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageExtension(t *testing.T) {
	if ImageExtension(MIMEJPEG) != ".jpg" || ImageExtension("x/y") != ".bin" {
		t.Error("ImageExtension() mismatch")
	}
	if !IsImageMIME(MIMEPNG) || IsImageMIME(MIMEOctetStream) {
		t.Error("IsImageMIME() mismatch")
	}
}
