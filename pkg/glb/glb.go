// Package glb reads and writes the glTF binary container: a 12-byte header
// followed by a JSON chunk and an optional BIN chunk.
package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Container constants.
const (
	Magic   uint32 = 0x46546C67 // "glTF"
	Version uint32 = 2

	ChunkJSON uint32 = 0x4E4F534A // "JSON"
	ChunkBIN  uint32 = 0x004E4942 // "BIN\0"

	headerSize      = 12
	chunkHeaderSize = 8
)

// Errors returned by Decode and Encode.
var (
	ErrTruncated          = errors.New("glb: truncated data")
	ErrInvalidMagic       = errors.New("glb: invalid magic")
	ErrUnsupportedVersion = errors.New("glb: unsupported version")
	ErrLengthMismatch     = errors.New("glb: length mismatch")
	ErrMisalignedChunk    = errors.New("glb: chunk length not a multiple of 4")
	ErrMissingJSON        = errors.New("glb: first chunk is not JSON")
	ErrChunkOrder         = errors.New("glb: BIN chunk must directly follow JSON")
	ErrTooLarge           = errors.New("glb: container exceeds 4 GiB")
)

// Container is a decoded GLB file. JSON and BIN alias the decoded input;
// BIN is nil when the file has no binary chunk. BIN keeps its trailing
// padding, which is at most three zero bytes.
type Container struct {
	JSON []byte
	BIN  []byte
}

// IsBinary reports whether data starts with the GLB magic.
func IsBinary(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == Magic
}

// Decode parses a GLB container.
func Decode(data []byte) (*Container, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, need header of %d", ErrTruncated, len(data), headerSize)
	}
	if magic := binary.LittleEndian.Uint32(data[0:]); magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidMagic, magic)
	}
	if version := binary.LittleEndian.Uint32(data[4:]); version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	total := binary.LittleEndian.Uint32(data[8:])
	if uint64(total) != uint64(len(data)) {
		return nil, fmt.Errorf("%w: header says %d, got %d bytes", ErrLengthMismatch, total, len(data))
	}

	c := &Container{}
	pos := headerSize
	for index := 0; pos < len(data); index++ {
		if len(data)-pos < chunkHeaderSize {
			return nil, fmt.Errorf("%w: chunk %d header at offset %d", ErrTruncated, index, pos)
		}
		length := binary.LittleEndian.Uint32(data[pos:])
		kind := binary.LittleEndian.Uint32(data[pos+4:])
		pos += chunkHeaderSize

		if length%4 != 0 {
			return nil, fmt.Errorf("%w: chunk %d has length %d", ErrMisalignedChunk, index, length)
		}
		if uint64(length) > uint64(len(data)-pos) {
			return nil, fmt.Errorf("%w: chunk %d needs %d bytes, %d left", ErrTruncated, index, length, len(data)-pos)
		}
		body := data[pos : pos+int(length)]
		pos += int(length)

		switch {
		case index == 0:
			if kind != ChunkJSON {
				return nil, fmt.Errorf("%w: got type 0x%08X", ErrMissingJSON, kind)
			}
			c.JSON = body
		case kind == ChunkBIN:
			if index != 1 {
				return nil, fmt.Errorf("%w: found at chunk %d", ErrChunkOrder, index)
			}
			c.BIN = body
		case kind == ChunkJSON:
			return nil, fmt.Errorf("%w: second JSON chunk at %d", ErrChunkOrder, index)
		}
		// Other chunk types are reserved for extensions and skipped.
	}
	if c.JSON == nil {
		return nil, ErrMissingJSON
	}
	return c, nil
}

// Encode writes a GLB container. json is padded with spaces and bin with
// zeros to a multiple of 4 bytes. A nil bin omits the BIN chunk; an empty
// non-nil bin writes a zero-length one.
func Encode(w io.Writer, json, bin []byte) error {
	jsonLen := align4(len(json))
	total := uint64(headerSize + chunkHeaderSize + jsonLen)
	if bin != nil {
		total += uint64(chunkHeaderSize + align4(len(bin)))
	}
	if total > 0xFFFFFFFF {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, total)
	}

	var header [headerSize]byte
	binary.LittleEndian.PutUint32(header[0:], Magic)
	binary.LittleEndian.PutUint32(header[4:], Version)
	binary.LittleEndian.PutUint32(header[8:], uint32(total))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("glb: write header: %w", err)
	}
	if err := writeChunk(w, ChunkJSON, json, ' '); err != nil {
		return err
	}
	if bin != nil {
		if err := writeChunk(w, ChunkBIN, bin, 0); err != nil {
			return err
		}
	}
	return nil
}

// Marshal is Encode into a new byte slice.
func Marshal(json, bin []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, json, bin); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeChunk(w io.Writer, kind uint32, body []byte, pad byte) error {
	padded := align4(len(body))
	var header [chunkHeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:], uint32(padded))
	binary.LittleEndian.PutUint32(header[4:], kind)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("glb: write chunk header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("glb: write chunk: %w", err)
	}
	if n := padded - len(body); n > 0 {
		if _, err := w.Write(bytes.Repeat([]byte{pad}, n)); err != nil {
			return fmt.Errorf("glb: write chunk padding: %w", err)
		}
	}
	return nil
}

func align4(n int) int {
	return (n + 3) &^ 3
}
