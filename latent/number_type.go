// Package latent defines the closed set of numeric types the chunk
// compression pipeline understands, their paired unsigned "latent" types,
// and the order-preserving conversions between them.
//
// A latent value is an unsigned integer derived from a number via a map that
// preserves the number's natural total order: for any a <= b,
// ToLatentOrdered(a) <= ToLatentOrdered(b) when compared as unsigned
// integers. This lets every downstream stage (binning, delta, ANS) operate
// on plain unsigned integers without ever branching on the original type.
package latent

// NumberType is the on-wire tag identifying a chunk's physical number type.
// Values are stable across format versions; never renumber an existing
// entry.
type NumberType byte

const (
	NumberTypeUnknown NumberType = 0

	NumberTypeI16 NumberType = 1
	NumberTypeI32 NumberType = 2
	NumberTypeI64 NumberType = 3

	NumberTypeU16 NumberType = 4
	NumberTypeU32 NumberType = 5
	NumberTypeU64 NumberType = 6

	NumberTypeF16 NumberType = 7
	NumberTypeF32 NumberType = 8
	NumberTypeF64 NumberType = 9

	// NumberTypeTimestampMicros is a signed 64-bit count of microseconds
	// relative to an implementation-defined epoch. It shares i64's latent
	// representation; the distinct tag exists only so callers can recover
	// the intended unit.
	NumberTypeTimestampMicros NumberType = 10
	// NumberTypeTimestampNanos is the nanosecond-resolution counterpart of
	// NumberTypeTimestampMicros.
	NumberTypeTimestampNanos NumberType = 11
)

// String implements fmt.Stringer.
func (t NumberType) String() string {
	switch t {
	case NumberTypeI16:
		return "i16"
	case NumberTypeI32:
		return "i32"
	case NumberTypeI64:
		return "i64"
	case NumberTypeU16:
		return "u16"
	case NumberTypeU32:
		return "u32"
	case NumberTypeU64:
		return "u64"
	case NumberTypeF16:
		return "f16"
	case NumberTypeF32:
		return "f32"
	case NumberTypeF64:
		return "f64"
	case NumberTypeTimestampMicros:
		return "timestamp_micros"
	case NumberTypeTimestampNanos:
		return "timestamp_nanos"
	default:
		return "unknown"
	}
}

// BitWidth returns the physical bit width of the type's latent
// representation: 16, 32, or 64.
func (t NumberType) BitWidth() int {
	switch t {
	case NumberTypeI16, NumberTypeU16, NumberTypeF16:
		return 16
	case NumberTypeI32, NumberTypeU32, NumberTypeF32:
		return 32
	case NumberTypeI64, NumberTypeU64, NumberTypeF64,
		NumberTypeTimestampMicros, NumberTypeTimestampNanos:
		return 64
	default:
		return 0
	}
}

// IsFloat reports whether t is one of the IEEE-754 float types.
func (t NumberType) IsFloat() bool {
	switch t {
	case NumberTypeF16, NumberTypeF32, NumberTypeF64:
		return true
	default:
		return false
	}
}

// Latent is the constraint satisfied by every latent representation used by
// the pipeline's generic kernels (binning, delta, ANS).
type Latent interface {
	~uint16 | ~uint32 | ~uint64
}
