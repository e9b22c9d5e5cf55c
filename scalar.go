package envi

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// DataType identifies the scalar encoding of a cube's samples.
type DataType int

const (
	Byte DataType = iota
	Int16
	Int32
	Float32
	Float64
	Uint16
	Uint32
	Uint64
	ULong
)

// ByteWidth returns the width in bytes of one scalar of type t.
func (t DataType) ByteWidth() int {
	switch t {
	case Byte:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	default:
		return 8
	}
}

func (t DataType) String() string {
	switch t {
	case Byte:
		return "byte"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case ULong:
		return "ulong"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// ParseDataType maps an ENVI "data type" token, either the numeric code or
// the type name, to a DataType. Codes 14 and 15 both decode as an 8-byte
// unsigned scalar.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "byte":
		return Byte, nil
	case "2", "int16":
		return Int16, nil
	case "3", "int32":
		return Int32, nil
	case "4", "float", "float32":
		return Float32, nil
	case "5", "double", "float64":
		return Float64, nil
	case "12", "uint16":
		return Uint16, nil
	case "13", "uint32":
		return Uint32, nil
	case "14", "uint64":
		return Uint64, nil
	case "15", "ulong":
		return ULong, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDataType, s)
	}
}

// ReverseBytes reverses b in place, converting one scalar's raw bytes between
// big- and little-endian order. Applied symmetrically on read and write.
func ReverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// hostBigEndian reports whether the machine stores multi-byte integers in
// big-endian order.
func hostBigEndian() bool {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	return buf[0] == 0
}

// ScalarValue is one decoded sample: up to eight raw bytes in host order plus
// the type they were read as. The zero value decodes to zero under every
// accessor. Accessors reinterpret the bytes per the tag; calling an accessor
// that does not match Type reads whatever bytes are present.
type ScalarValue struct {
	Type DataType
	raw  [8]byte
}

// Bytes returns the value's raw bytes, trimmed to the type's width.
func (v ScalarValue) Bytes() []byte { return v.raw[:v.Type.ByteWidth()] }

func (v ScalarValue) Byte() uint8 { return v.raw[0] }

func (v ScalarValue) Int16() int16 {
	return int16(binary.NativeEndian.Uint16(v.raw[:2]))
}

func (v ScalarValue) Int32() int32 {
	return int32(binary.NativeEndian.Uint32(v.raw[:4]))
}

func (v ScalarValue) Uint16() uint16 {
	return binary.NativeEndian.Uint16(v.raw[:2])
}

func (v ScalarValue) Uint32() uint32 {
	return binary.NativeEndian.Uint32(v.raw[:4])
}

func (v ScalarValue) Uint64() uint64 {
	return binary.NativeEndian.Uint64(v.raw[:8])
}

func (v ScalarValue) Float32() float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(v.raw[:4]))
}

func (v ScalarValue) Float64() float64 {
	return math.Float64frombits(binary.NativeEndian.Uint64(v.raw[:8]))
}

// AsFloat64 converts the value to float64 according to its own tag, for
// consumers that need a uniform numeric view (plotting, tensor conversion).
func (v ScalarValue) AsFloat64() float64 {
	switch v.Type {
	case Byte:
		return float64(v.Byte())
	case Int16:
		return float64(v.Int16())
	case Int32:
		return float64(v.Int32())
	case Float32:
		return float64(v.Float32())
	case Float64:
		return v.Float64()
	case Uint16:
		return float64(v.Uint16())
	case Uint32:
		return float64(v.Uint32())
	default:
		return float64(v.Uint64())
	}
}
