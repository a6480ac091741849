package latent

import "math"

// Signed integers order as unsigned latents by flipping the sign bit: this
// maps the signed range [-2^(k-1), 2^(k-1)-1] onto the unsigned range
// [0, 2^k-1] while preserving order.

// Int16ToLatentOrdered converts a signed 16-bit integer to its order
// preserving unsigned latent.
func Int16ToLatentOrdered(x int16) uint16 { return uint16(x) ^ 0x8000 }

// LatentOrderedToInt16 is the inverse of Int16ToLatentOrdered.
func LatentOrderedToInt16(u uint16) int16 { return int16(u ^ 0x8000) }

// Int32ToLatentOrdered converts a signed 32-bit integer to its order
// preserving unsigned latent.
func Int32ToLatentOrdered(x int32) uint32 { return uint32(x) ^ 0x80000000 }

// LatentOrderedToInt32 is the inverse of Int32ToLatentOrdered.
func LatentOrderedToInt32(u uint32) int32 { return int32(u ^ 0x80000000) }

// Int64ToLatentOrdered converts a signed 64-bit integer to its order
// preserving unsigned latent.
func Int64ToLatentOrdered(x int64) uint64 { return uint64(x) ^ 0x8000000000000000 }

// LatentOrderedToInt64 is the inverse of Int64ToLatentOrdered.
func LatentOrderedToInt64(u uint64) int64 { return int64(u ^ 0x8000000000000000) }

// Uint16ToLatentOrdered is the identity map: unsigned integers are already
// their own order preserving latent.
func Uint16ToLatentOrdered(x uint16) uint16 { return x }

// LatentOrderedToUint16 is the identity map's inverse.
func LatentOrderedToUint16(u uint16) uint16 { return u }

// Uint32ToLatentOrdered is the identity map.
func Uint32ToLatentOrdered(x uint32) uint32 { return x }

// LatentOrderedToUint32 is the identity map's inverse.
func LatentOrderedToUint32(u uint32) uint32 { return u }

// Uint64ToLatentOrdered is the identity map.
func Uint64ToLatentOrdered(x uint64) uint64 { return x }

// LatentOrderedToUint64 is the identity map's inverse.
func LatentOrderedToUint64(u uint64) uint64 { return u }

// Float32ToLatentBits reinterprets a float32's bit pattern as a uint32
// without reordering. This is the representation used by FloatQuant, which
// operates directly on the significand's low bits.
func Float32ToLatentBits(x float32) uint32 { return math.Float32bits(x) }

// Float32FromLatentBits is the inverse of Float32ToLatentBits.
func Float32FromLatentBits(u uint32) float32 { return math.Float32frombits(u) }

// Float32ToLatentOrdered maps a float32's bit pattern to an order preserving
// uint32: for negative numbers (sign bit set) flip every bit, for
// non-negative numbers flip only the sign bit. This is the standard
// total-order transform for IEEE-754: it places -0.0 just below +0.0, orders
// all finite negatives below all finite non-negatives, and sorts NaNs as
// larger in magnitude than same-signed infinities, a total order stable
// enough for bitwise round-trip regardless of NaN payload.
func Float32ToLatentOrdered(x float32) uint32 {
	bits := math.Float32bits(x)
	if bits&0x8000_0000 != 0 {
		return ^bits
	}
	return bits | 0x8000_0000
}

// Float32FromLatentOrdered is the inverse of Float32ToLatentOrdered.
func Float32FromLatentOrdered(u uint32) float32 {
	var bits uint32
	if u&0x8000_0000 != 0 {
		bits = u &^ 0x8000_0000
	} else {
		bits = ^u
	}
	return math.Float32frombits(bits)
}

// Float64ToLatentBits reinterprets a float64's bit pattern as a uint64.
func Float64ToLatentBits(x float64) uint64 { return math.Float64bits(x) }

// Float64FromLatentBits is the inverse of Float64ToLatentBits.
func Float64FromLatentBits(u uint64) float64 { return math.Float64frombits(u) }

// Float64ToLatentOrdered is Float32ToLatentOrdered's 64-bit counterpart.
func Float64ToLatentOrdered(x float64) uint64 {
	bits := math.Float64bits(x)
	if bits&0x8000_0000_0000_0000 != 0 {
		return ^bits
	}
	return bits | 0x8000_0000_0000_0000
}

// Float64FromLatentOrdered is the inverse of Float64ToLatentOrdered.
func Float64FromLatentOrdered(u uint64) float64 {
	var bits uint64
	if u&0x8000_0000_0000_0000 != 0 {
		bits = u &^ 0x8000_0000_0000_0000
	} else {
		bits = ^u
	}
	return math.Float64frombits(bits)
}

// Float16 is an IEEE-754 binary16 value stored as its raw bit pattern. Go has
// no native half-precision type; the pipeline never needs float16
// arithmetic, only the bit pattern and its order preserving latent, so a
// thin wrapper over uint16 suffices.
type Float16 uint16

// Float16ToLatentBits reinterprets a Float16's bit pattern as a uint16.
func Float16ToLatentBits(x Float16) uint16 { return uint16(x) }

// Float16FromLatentBits is the inverse of Float16ToLatentBits.
func Float16FromLatentBits(u uint16) Float16 { return Float16(u) }

// Float16ToLatentOrdered is Float32ToLatentOrdered's 16-bit counterpart.
func Float16ToLatentOrdered(x Float16) uint16 {
	bits := uint16(x)
	if bits&0x8000 != 0 {
		return ^bits
	}
	return bits | 0x8000
}

// Float16FromLatentOrdered is the inverse of Float16ToLatentOrdered.
func Float16FromLatentOrdered(u uint16) Float16 {
	var bits uint16
	if u&0x8000 != 0 {
		bits = u &^ 0x8000
	} else {
		bits = ^u
	}
	return Float16(bits)
}
