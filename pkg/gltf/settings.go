package gltf

import "go.uber.org/zap"

// FileResolver returns the bytes of an external resource referenced by a
// relative uri.
type FileResolver func(uri string) ([]byte, error)

// FileWriter stores an external resource under a relative uri.
type FileWriter func(uri string, data []byte) error

// BufferMode selects where buffer bytes go on write.
type BufferMode int

const (
	// BufferEmbedded writes buffers and images as base64 data URIs.
	BufferEmbedded BufferMode = iota
	// BufferExternal writes buffers and images as separate files through
	// WriteSettings.Writer.
	BufferExternal
	// BufferBinary writes a GLB container with the single buffer in the BIN
	// chunk. Images without a buffer view are embedded as data URIs.
	BufferBinary
)

func (m BufferMode) String() string {
	switch m {
	case BufferEmbedded:
		return "embedded"
	case BufferExternal:
		return "external"
	case BufferBinary:
		return "binary"
	}
	return "unknown"
}

// ParseBufferMode parses the names returned by BufferMode.String.
func ParseBufferMode(s string) (BufferMode, bool) {
	for _, m := range []BufferMode{BufferEmbedded, BufferExternal, BufferBinary} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// ReadSettings controls Decode. The zero value validates structure with
// DefaultRegistry and cannot follow external uris.
type ReadSettings struct {
	Resolver   FileResolver
	Registry   *Registry
	Validation ValidationMode
	Logger     *zap.Logger
}

// WriteSettings controls Encode. The zero value embeds buffers as data URIs
// after a structural validation.
type WriteSettings struct {
	BufferMode BufferMode
	// BaseName prefixes external file names; "model" when empty.
	BaseName string
	Writer   FileWriter
	// MergeBuffers merges a copy of the document into one buffer before
	// writing. The document itself is not modified.
	MergeBuffers bool
	Indent       bool
	Registry     *Registry
	Validation   ValidationMode
	Logger       *zap.Logger
}

func (s *ReadSettings) registry() *Registry {
	if s == nil || s.Registry == nil {
		return DefaultRegistry
	}
	return s.Registry
}

func (s *ReadSettings) logger() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *WriteSettings) registry() *Registry {
	if s.Registry == nil {
		return DefaultRegistry
	}
	return s.Registry
}

func (s *WriteSettings) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *WriteSettings) baseName() string {
	if s.BaseName == "" {
		return "model"
	}
	return s.BaseName
}
