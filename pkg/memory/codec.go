package memory

import (
	"encoding/binary"
	"math"
)

// decodeComponent reads one component starting at b[0]. Integers are
// returned exactly; float32 precision is only lost by callers that narrow.
func decodeComponent(b []byte, enc Encoding, normalized bool) float64 {
	switch enc {
	case Byte:
		v := float64(int8(b[0]))
		if normalized {
			return math.Max(v/127, -1)
		}
		return v
	case UnsignedByte:
		v := float64(b[0])
		if normalized {
			return v / 255
		}
		return v
	case Short:
		v := float64(int16(binary.LittleEndian.Uint16(b)))
		if normalized {
			return math.Max(v/32767, -1)
		}
		return v
	case UnsignedShort:
		v := float64(binary.LittleEndian.Uint16(b))
		if normalized {
			return v / 65535
		}
		return v
	case UnsignedInt:
		v := float64(binary.LittleEndian.Uint32(b))
		if normalized {
			return v / math.MaxUint32
		}
		return v
	case Float:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	default:
		panic("memory: unknown encoding " + enc.String())
	}
}

// decodeFloat32 narrows a decoded component the way glTF consumers see it.
// Normalized values are divided in float32 so 255/255 and friends stay exact.
func decodeFloat32(b []byte, enc Encoding, normalized bool) float32 {
	switch {
	case enc == Float:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	case normalized && enc == UnsignedByte:
		return float32(b[0]) / 255
	case normalized && enc == UnsignedShort:
		return float32(binary.LittleEndian.Uint16(b)) / 65535
	case normalized && enc == Byte:
		return max(float32(int8(b[0]))/127, -1)
	case normalized && enc == Short:
		return max(float32(int16(binary.LittleEndian.Uint16(b)))/32767, -1)
	default:
		return float32(decodeComponent(b, enc, normalized))
	}
}

func encodeComponent(b []byte, enc Encoding, normalized bool, v float64) {
	switch enc {
	case Byte:
		b[0] = byte(int8(quantize(v, normalized, math.MinInt8, math.MaxInt8)))
	case UnsignedByte:
		b[0] = byte(quantize(v, normalized, 0, math.MaxUint8))
	case Short:
		binary.LittleEndian.PutUint16(b, uint16(int16(quantize(v, normalized, math.MinInt16, math.MaxInt16))))
	case UnsignedShort:
		binary.LittleEndian.PutUint16(b, uint16(quantize(v, normalized, 0, math.MaxUint16)))
	case UnsignedInt:
		binary.LittleEndian.PutUint32(b, uint32(quantize(v, normalized, 0, math.MaxUint32)))
	case Float:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	default:
		panic("memory: unknown encoding " + enc.String())
	}
}

// quantize maps v onto the integer range [lo, hi]. Normalized values are
// clamped to [-1, 1] (signed) or [0, 1] (unsigned) and scaled by hi, so the
// most negative code is never produced by a normalized write. NaN encodes
// as zero.
func quantize(v float64, normalized bool, lo, hi int64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	if normalized {
		floor := 0.0
		if lo < 0 {
			floor = -1
		}
		v = math.Min(math.Max(v, floor), 1) * float64(hi)
	}
	v = math.Round(v)
	if v < float64(lo) {
		return lo
	}
	if v > float64(hi) {
		return hi
	}
	return int64(v)
}
