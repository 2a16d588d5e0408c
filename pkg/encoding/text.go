// Package encoding provides text and payload encoding helpers for glTF
// files: byte order mark handling, data URIs and image type detection.
package encoding

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText returns data as UTF-8 with any leading byte order mark removed.
// UTF-16 input announced by a BOM is converted to UTF-8; input without a BOM
// is treated as UTF-8 and returned unchanged.
func DecodeText(data []byte) ([]byte, error) {
	if !hasBOM(data) {
		return data, nil
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("encoding: decode text: %w", err)
	}
	return result, nil
}

func hasBOM(data []byte) bool {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return true
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return true
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return true
	}
	return false
}
