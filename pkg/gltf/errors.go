package gltf

import "errors"

// Validation issue kinds. Every Issue wraps exactly one of these.
var (
	ErrInvalidAsset         = errors.New("invalid asset")
	ErrInvalidReference     = errors.New("invalid reference")
	ErrDuplicateReference   = errors.New("duplicate reference")
	ErrSelfReference        = errors.New("self reference")
	ErrCircularReference    = errors.New("circular reference")
	ErrMultipleParents      = errors.New("node has multiple parents")
	ErrUnsupportedExtension = errors.New("unsupported extension")
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrInvalidValue         = errors.New("invalid value")
	ErrBoundsMismatch       = errors.New("bounds mismatch")
)

// Codec and data access errors.
var (
	ErrDataOutOfRange  = errors.New("gltf: data out of range")
	ErrMultipleBuffers = errors.New("gltf: binary output requires a single buffer")
	ErrMissingResolver = errors.New("gltf: no resolver for external uri")
	ErrMissingWriter   = errors.New("gltf: no writer for external output")
	ErrInvalidJSON     = errors.New("gltf: invalid json")
	ErrMissingAsset    = errors.New("gltf: missing asset block")
	ErrValidation      = errors.New("gltf: validation failed")
)
