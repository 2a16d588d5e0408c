// Package memory reinterprets raw byte slices as strided arrays of typed
// glTF elements.
//
// Every array in this package is a view: it aliases the []byte it was built
// over and never copies it. Writes through a view land directly in that
// slice. A view taken from a glTF buffer keeps addressing the same storage
// even after the buffer is replaced (for example by a buffer merge), so
// callers must resolve fresh views from their accessors after any operation
// that rewrites buffer storage.
//
// Component decoding follows the glTF 2.0 accessor rules:
//
//   - unsigned N-bit normalized: v / (2^N - 1)
//   - signed N-bit normalized: max(v / (2^(N-1) - 1), -1)
//   - non-normalized integers: the numeric value
//   - float: unchanged
//
// Integer writes round half away from zero and clamp to the range of the
// encoding; normalized writes clamp the input to [0, 1] or [-1, 1] first.
// With this rule 0.5 written as a normalized unsigned byte reads back as
// 128/255.
package memory
