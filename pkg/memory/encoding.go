package memory

import "fmt"

// Encoding is the glTF component type of an accessor.
type Encoding uint32

// Component types, with their glTF enum values.
const (
	Byte          Encoding = 5120
	UnsignedByte  Encoding = 5121
	Short         Encoding = 5122
	UnsignedShort Encoding = 5123
	UnsignedInt   Encoding = 5125
	Float         Encoding = 5126
)

// ByteLength returns the size of one component in bytes, or 0 for an
// unknown encoding.
func (e Encoding) ByteLength() int {
	switch e {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case UnsignedInt, Float:
		return 4
	default:
		return 0
	}
}

// IsValid reports whether e is one of the six glTF component types.
func (e Encoding) IsValid() bool {
	return e.ByteLength() != 0
}

// IsInteger reports whether e is an integer component type.
func (e Encoding) IsInteger() bool {
	return e.IsValid() && e != Float
}

// IsUnsigned reports whether e is an unsigned integer component type.
func (e Encoding) IsUnsigned() bool {
	return e == UnsignedByte || e == UnsignedShort || e == UnsignedInt
}

// CanNormalize reports whether glTF allows the normalized flag on e.
func (e Encoding) CanNormalize() bool {
	return e == Byte || e == UnsignedByte || e == Short || e == UnsignedShort
}

// String returns the glTF spelling of the component type.
func (e Encoding) String() string {
	switch e {
	case Byte:
		return "BYTE"
	case UnsignedByte:
		return "UNSIGNED_BYTE"
	case Short:
		return "SHORT"
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	case UnsignedInt:
		return "UNSIGNED_INT"
	case Float:
		return "FLOAT"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(e))
	}
}
