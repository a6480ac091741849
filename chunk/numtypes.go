package chunk

import (
	"github.com/arloliu/numcodec/bitio"
	"github.com/arloliu/numcodec/latent"
	"github.com/arloliu/numcodec/mode"
)

// This file wires the generic Compress/Decompress engine to the concrete
// number types spec.md's NumberType enum names. Each constructor pairs a
// SelectFunc (mode selection), SplitFunc (latent decomposition), and
// JoinFunc (latent recomposition) suited to that type's mode repertoire:
// signed integers get Classic/IntMult, float64 gets Classic/IntMult's
// float counterparts (FloatMult/FloatQuant), float32 gets Classic/FloatQuant
// only (FloatMult detection isn't wired for float32), and unsigned integers
// and Float16 get Classic only.

func selectNone[T any](nums []T, cfg ChunkConfig) mode.Mode { return mode.Classic }

func splitClassic[T any, L latent.Latent](toLatent func(T) L) SplitFunc[T, L] {
	return func(nums []T, m mode.Mode) (primary, secondary []L) {
		primary = make([]L, len(nums))
		for i, v := range nums {
			primary[i] = toLatent(v)
		}
		return primary, nil
	}
}

func joinClassic[T any, L latent.Latent](fromLatent func(L) T) JoinFunc[T, L] {
	return func(primary, secondary []L, m mode.Mode) []T {
		nums := make([]T, len(primary))
		for i, v := range primary {
			nums[i] = fromLatent(v)
		}
		return nums
	}
}

// --- int16 / uint16 ---

func selectI16(nums []int16, cfg ChunkConfig) mode.Mode { return mode.SelectInt(nums) }

func splitI16(nums []int16, m mode.Mode) (primary, secondary []uint16) {
	if m.Kind != mode.KindIntMult {
		primary = make([]uint16, len(nums))
		for i, v := range nums {
			primary[i] = latent.Int16ToLatentOrdered(v)
		}
		return primary, nil
	}
	q, r := mode.SplitIntMult(nums, int16(m.IntBase))
	primary = make([]uint16, len(q))
	secondary = make([]uint16, len(r))
	for i, v := range q {
		primary[i] = latent.Int16ToLatentOrdered(v)
	}
	for i, v := range r {
		secondary[i] = uint16(v)
	}
	return primary, secondary
}

func joinI16(primary, secondary []uint16, m mode.Mode) []int16 {
	if m.Kind != mode.KindIntMult {
		nums := make([]int16, len(primary))
		for i, v := range primary {
			nums[i] = latent.LatentOrderedToInt16(v)
		}
		return nums
	}
	q := make([]int16, len(primary))
	r := make([]int16, len(secondary))
	for i, v := range primary {
		q[i] = latent.LatentOrderedToInt16(v)
	}
	for i, v := range secondary {
		r[i] = int16(v)
	}
	return mode.JoinIntMult(q, r, int16(m.IntBase))
}

// CompressInt16 compresses a chunk of signed 16-bit integers.
func CompressInt16(nums []int16, cfg ChunkConfig) (*Compressor[int16, uint16], error) {
	return Compress[int16, uint16](nums, cfg, latent.NumberTypeI16, selectI16, splitI16)
}

// DecodeInt16ChunkMeta decodes a signed 16-bit integer chunk's metadata.
func DecodeInt16ChunkMeta(r *bitio.Reader) (*Decompressor[int16, uint16], error) {
	return DecodeChunkMeta[int16, uint16](r, latent.NumberTypeI16, joinI16)
}

func selectU16(nums []uint16, cfg ChunkConfig) mode.Mode { return mode.Classic }

// CompressUint16 compresses a chunk of unsigned 16-bit integers (Classic
// mode only: IntMult isn't wired for unsigned types, see DESIGN.md).
func CompressUint16(nums []uint16, cfg ChunkConfig) (*Compressor[uint16, uint16], error) {
	return Compress[uint16, uint16](nums, cfg, latent.NumberTypeU16,
		selectU16,
		splitClassic[uint16, uint16](latent.Uint16ToLatentOrdered))
}

// DecodeUint16ChunkMeta decodes an unsigned 16-bit integer chunk's metadata.
func DecodeUint16ChunkMeta(r *bitio.Reader) (*Decompressor[uint16, uint16], error) {
	return DecodeChunkMeta[uint16, uint16](r, latent.NumberTypeU16,
		joinClassic[uint16, uint16](latent.LatentOrderedToUint16))
}

// --- int32 / uint32 ---

func selectI32(nums []int32, cfg ChunkConfig) mode.Mode { return mode.SelectInt(nums) }

func splitI32(nums []int32, m mode.Mode) (primary, secondary []uint32) {
	if m.Kind != mode.KindIntMult {
		primary = make([]uint32, len(nums))
		for i, v := range nums {
			primary[i] = latent.Int32ToLatentOrdered(v)
		}
		return primary, nil
	}
	q, r := mode.SplitIntMult(nums, int32(m.IntBase))
	primary = make([]uint32, len(q))
	secondary = make([]uint32, len(r))
	for i, v := range q {
		primary[i] = latent.Int32ToLatentOrdered(v)
	}
	for i, v := range r {
		secondary[i] = uint32(v)
	}
	return primary, secondary
}

func joinI32(primary, secondary []uint32, m mode.Mode) []int32 {
	if m.Kind != mode.KindIntMult {
		nums := make([]int32, len(primary))
		for i, v := range primary {
			nums[i] = latent.LatentOrderedToInt32(v)
		}
		return nums
	}
	q := make([]int32, len(primary))
	r := make([]int32, len(secondary))
	for i, v := range primary {
		q[i] = latent.LatentOrderedToInt32(v)
	}
	for i, v := range secondary {
		r[i] = int32(v)
	}
	return mode.JoinIntMult(q, r, int32(m.IntBase))
}

// CompressInt32 compresses a chunk of signed 32-bit integers.
func CompressInt32(nums []int32, cfg ChunkConfig) (*Compressor[int32, uint32], error) {
	return Compress[int32, uint32](nums, cfg, latent.NumberTypeI32, selectI32, splitI32)
}

// DecodeInt32ChunkMeta decodes a signed 32-bit integer chunk's metadata.
func DecodeInt32ChunkMeta(r *bitio.Reader) (*Decompressor[int32, uint32], error) {
	return DecodeChunkMeta[int32, uint32](r, latent.NumberTypeI32, joinI32)
}

func selectU32(nums []uint32, cfg ChunkConfig) mode.Mode { return mode.Classic }

// CompressUint32 compresses a chunk of unsigned 32-bit integers.
func CompressUint32(nums []uint32, cfg ChunkConfig) (*Compressor[uint32, uint32], error) {
	return Compress[uint32, uint32](nums, cfg, latent.NumberTypeU32,
		selectU32,
		splitClassic[uint32, uint32](latent.Uint32ToLatentOrdered))
}

// DecodeUint32ChunkMeta decodes an unsigned 32-bit integer chunk's metadata.
func DecodeUint32ChunkMeta(r *bitio.Reader) (*Decompressor[uint32, uint32], error) {
	return DecodeChunkMeta[uint32, uint32](r, latent.NumberTypeU32,
		joinClassic[uint32, uint32](latent.LatentOrderedToUint32))
}

// --- int64 / uint64 / timestamps ---

func selectI64(nums []int64, cfg ChunkConfig) mode.Mode { return mode.SelectInt(nums) }

func splitI64(nums []int64, m mode.Mode) (primary, secondary []uint64) {
	if m.Kind != mode.KindIntMult {
		primary = make([]uint64, len(nums))
		for i, v := range nums {
			primary[i] = latent.Int64ToLatentOrdered(v)
		}
		return primary, nil
	}
	q, r := mode.SplitIntMult(nums, int64(m.IntBase))
	primary = make([]uint64, len(q))
	secondary = make([]uint64, len(r))
	for i, v := range q {
		primary[i] = latent.Int64ToLatentOrdered(v)
	}
	for i, v := range r {
		secondary[i] = uint64(v)
	}
	return primary, secondary
}

func joinI64(primary, secondary []uint64, m mode.Mode) []int64 {
	if m.Kind != mode.KindIntMult {
		nums := make([]int64, len(primary))
		for i, v := range primary {
			nums[i] = latent.LatentOrderedToInt64(v)
		}
		return nums
	}
	q := make([]int64, len(primary))
	r := make([]int64, len(secondary))
	for i, v := range primary {
		q[i] = latent.LatentOrderedToInt64(v)
	}
	for i, v := range secondary {
		r[i] = int64(v)
	}
	return mode.JoinIntMult(q, r, int64(m.IntBase))
}

// CompressInt64 compresses a chunk of signed 64-bit integers.
func CompressInt64(nums []int64, cfg ChunkConfig) (*Compressor[int64, uint64], error) {
	return compressInt64As(nums, cfg, latent.NumberTypeI64)
}

// CompressTimestampMicros compresses a chunk of signed 64-bit microsecond
// timestamps. Timestamps share int64's latent representation and mode
// repertoire; only the NumberType differs. The chunk wire format does not
// record the NumberType, so the decoder must be given it (see
// DecodeInt64ChunkMeta).
func CompressTimestampMicros(nums []int64, cfg ChunkConfig) (*Compressor[int64, uint64], error) {
	return compressInt64As(nums, cfg, latent.NumberTypeTimestampMicros)
}

// CompressTimestampNanos is CompressTimestampMicros's nanosecond-resolution
// counterpart.
func CompressTimestampNanos(nums []int64, cfg ChunkConfig) (*Compressor[int64, uint64], error) {
	return compressInt64As(nums, cfg, latent.NumberTypeTimestampNanos)
}

func compressInt64As(nums []int64, cfg ChunkConfig, numberType latent.NumberType) (*Compressor[int64, uint64], error) {
	return Compress[int64, uint64](nums, cfg, numberType, selectI64, splitI64)
}

// DecodeInt64ChunkMeta decodes a signed 64-bit integer chunk's metadata.
// numberType should be whichever of NumberTypeI64, NumberTypeTimestampMicros
// or NumberTypeTimestampNanos the chunk was compressed with; the chunk
// metadata does not carry it, so callers must track it out of band (e.g.
// alongside the chunk's column schema).
func DecodeInt64ChunkMeta(r *bitio.Reader, numberType latent.NumberType) (*Decompressor[int64, uint64], error) {
	return DecodeChunkMeta[int64, uint64](r, numberType, joinI64)
}

func selectU64(nums []uint64, cfg ChunkConfig) mode.Mode { return mode.Classic }

// CompressUint64 compresses a chunk of unsigned 64-bit integers.
func CompressUint64(nums []uint64, cfg ChunkConfig) (*Compressor[uint64, uint64], error) {
	return Compress[uint64, uint64](nums, cfg, latent.NumberTypeU64,
		selectU64,
		splitClassic[uint64, uint64](latent.Uint64ToLatentOrdered))
}

// DecodeUint64ChunkMeta decodes an unsigned 64-bit integer chunk's metadata.
func DecodeUint64ChunkMeta(r *bitio.Reader) (*Decompressor[uint64, uint64], error) {
	return DecodeChunkMeta[uint64, uint64](r, latent.NumberTypeU64,
		joinClassic[uint64, uint64](latent.LatentOrderedToUint64))
}

// --- float32 / float64 ---

func selectF64(nums []float64, cfg ChunkConfig) mode.Mode { return mode.SelectFloat64(nums) }

func splitF64(nums []float64, m mode.Mode) (primary, secondary []uint64) {
	switch m.Kind {
	case mode.KindFloatMult:
		return mode.SplitFloatMultF64(nums, m.FloatBase, m.FloatInvBase)
	case mode.KindFloatQuant:
		return mode.SplitFloatQuantF64(nums, m.QuantK)
	default:
		primary = make([]uint64, len(nums))
		for i, v := range nums {
			primary[i] = latent.Float64ToLatentOrdered(v)
		}
		return primary, nil
	}
}

func joinF64(primary, secondary []uint64, m mode.Mode) []float64 {
	switch m.Kind {
	case mode.KindFloatMult:
		return mode.JoinFloatMultF64(primary, secondary, m.FloatBase)
	case mode.KindFloatQuant:
		return mode.JoinFloatQuantF64(primary, secondary, m.QuantK)
	default:
		nums := make([]float64, len(primary))
		for i, v := range primary {
			nums[i] = latent.Float64FromLatentOrdered(v)
		}
		return nums
	}
}

// CompressFloat64 compresses a chunk of float64s.
func CompressFloat64(nums []float64, cfg ChunkConfig) (*Compressor[float64, uint64], error) {
	return Compress[float64, uint64](nums, cfg, latent.NumberTypeF64, selectF64, splitF64)
}

// DecodeFloat64ChunkMeta decodes a float64 chunk's metadata.
func DecodeFloat64ChunkMeta(r *bitio.Reader) (*Decompressor[float64, uint64], error) {
	return DecodeChunkMeta[float64, uint64](r, latent.NumberTypeF64, joinF64)
}

func selectF32(nums []float32, cfg ChunkConfig) mode.Mode { return mode.SelectFloat32(nums) }

func splitF32(nums []float32, m mode.Mode) (primary, secondary []uint32) {
	if m.Kind == mode.KindFloatQuant {
		return mode.SplitFloatQuantF32(nums, m.QuantK)
	}
	primary = make([]uint32, len(nums))
	for i, v := range nums {
		primary[i] = latent.Float32ToLatentOrdered(v)
	}
	return primary, nil
}

func joinF32(primary, secondary []uint32, m mode.Mode) []float32 {
	if m.Kind == mode.KindFloatQuant {
		return mode.JoinFloatQuantF32(primary, secondary, m.QuantK)
	}
	nums := make([]float32, len(primary))
	for i, v := range primary {
		nums[i] = latent.Float32FromLatentOrdered(v)
	}
	return nums
}

// CompressFloat32 compresses a chunk of float32s (Classic/FloatQuant only;
// FloatMult detection isn't wired for float32).
func CompressFloat32(nums []float32, cfg ChunkConfig) (*Compressor[float32, uint32], error) {
	return Compress[float32, uint32](nums, cfg, latent.NumberTypeF32, selectF32, splitF32)
}

// DecodeFloat32ChunkMeta decodes a float32 chunk's metadata.
func DecodeFloat32ChunkMeta(r *bitio.Reader) (*Decompressor[float32, uint32], error) {
	return DecodeChunkMeta[float32, uint32](r, latent.NumberTypeF32, joinF32)
}

// --- float16 ---

func selectF16(nums []latent.Float16, cfg ChunkConfig) mode.Mode { return mode.Classic }

// CompressFloat16 compresses a chunk of Float16s. Mode detection isn't
// wired for float16 (Classic only, see DESIGN.md): at 16 bits of total
// range, FloatMult/FloatQuant's sampling-based detectors have too little
// headroom to reliably beat Classic's plain ordered-latent encoding.
func CompressFloat16(nums []latent.Float16, cfg ChunkConfig) (*Compressor[latent.Float16, uint16], error) {
	return Compress[latent.Float16, uint16](nums, cfg, latent.NumberTypeF16,
		selectF16,
		splitClassic[latent.Float16, uint16](latent.Float16ToLatentOrdered))
}

// DecodeFloat16ChunkMeta decodes a Float16 chunk's metadata.
func DecodeFloat16ChunkMeta(r *bitio.Reader) (*Decompressor[latent.Float16, uint16], error) {
	return DecodeChunkMeta[latent.Float16, uint16](r, latent.NumberTypeF16,
		joinClassic[latent.Float16, uint16](latent.Float16FromLatentOrdered))
}
