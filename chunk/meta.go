package chunk

import (
	"fmt"

	"github.com/arloliu/numcodec/ans"
	"github.com/arloliu/numcodec/bin"
	"github.com/arloliu/numcodec/bitio"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/latent"
	"github.com/arloliu/numcodec/mode"
)

// Wire-format bit widths, named after the fields they size.
const (
	bitsToEncodeModeTag        = 2
	bitsToEncodeVarintPower    = 7
	bitsToEncodeFloatQuantK    = 6
	bitsToEncodeDeltaTag       = 1
	bitsToEncodeDeltaOrder     = 3
	bitsToEncodeAnsSizeLog     = 4
	bitsToEncodeOffsetBitsWide = 7
	bitsToEncodeOffsetBitsNarrow = 6
)

func bitsToEncodeOffsetBits(latentBitWidth int) int {
	if latentBitWidth > 32 {
		return bitsToEncodeOffsetBitsWide
	}
	return bitsToEncodeOffsetBitsNarrow
}

// LatentVarMeta is one latent variable's chunk-metadata entry: its ANS
// table and bin layout.
type LatentVarMeta[L latent.Latent] struct {
	AnsSizeLog uint32
	Bins       []bin.CompressionInfo[L]
}

// Meta is a chunk's full metadata: the mode, delta configuration, and
// per-latent-variable ANS/bin tables.
type Meta[L latent.Latent] struct {
	NumberType latent.NumberType
	Mode       mode.Mode
	Delta      DeltaSpec
	Vars       PerLatentVar[LatentVarMeta[L]]
}

func writeVarintPower(w *bitio.Writer, v uint64) {
	numBits := 0
	if v > 0 {
		numBits = 64 - leadingZeros64(v)
	}
	w.WriteBits(uint64(numBits), bitsToEncodeVarintPower)
	if numBits > 0 {
		w.WriteBits(v, numBits)
	}
}

func readVarintPower(r *bitio.Reader) (uint64, error) {
	numBitsRaw, err := r.ReadBits(bitsToEncodeVarintPower)
	if err != nil {
		return 0, err
	}
	if numBitsRaw == 0 {
		return 0, nil
	}
	return r.ReadBits(int(numBitsRaw))
}

func leadingZeros64(v uint64) int {
	n := 0
	for i := 63; i >= 0; i-- {
		if v&(uint64(1)<<i) != 0 {
			break
		}
		n++
	}
	return n
}

// EncodeMeta writes a chunk's metadata: mode tag and params, delta tag and
// order, then each present latent variable's ANS size log, bin count, and
// bin table, in canonical order (primary, secondary).
func EncodeMeta[L latent.Latent](w *bitio.Writer, meta Meta[L], latentBitWidth int) error {
	w.WriteBits(uint64(meta.Mode.Kind), bitsToEncodeModeTag)
	switch meta.Mode.Kind {
	case mode.KindClassic:
	case mode.KindIntMult:
		writeVarintPower(w, meta.Mode.IntBase)
	case mode.KindFloatMult:
		w.WriteBits(latent.Float64ToLatentBits(meta.Mode.FloatBase), 64)
	case mode.KindFloatQuant:
		w.WriteBits(uint64(meta.Mode.QuantK), bitsToEncodeFloatQuantK)
	default:
		return fmt.Errorf("%w: unknown mode kind %d", errs.ErrInvalidArgument, meta.Mode.Kind)
	}

	switch meta.Delta.Kind {
	case DeltaNone:
		w.WriteBits(0, bitsToEncodeDeltaTag)
	case DeltaConsecutive:
		w.WriteBits(1, bitsToEncodeDeltaTag)
		w.WriteBits(uint64(meta.Delta.Order), bitsToEncodeDeltaOrder)
	default:
		return fmt.Errorf("%w: unsupported delta kind on the wire %d", errs.ErrInvalidArgument, meta.Delta.Kind)
	}

	for _, entry := range meta.Vars.Enumerated() {
		if err := encodeLatentVarMeta(w, entry.Value, latentBitWidth); err != nil {
			return fmt.Errorf("%s latent var: %w", entry.Key, err)
		}
	}

	return nil
}

func encodeLatentVarMeta[L latent.Latent](w *bitio.Writer, m LatentVarMeta[L], latentBitWidth int) error {
	if m.AnsSizeLog > ans.MaxSizeLog {
		return fmt.Errorf("%w: ans_size_log %d exceeds limit", errs.ErrInvalidArgument, m.AnsSizeLog)
	}
	w.WriteBits(uint64(m.AnsSizeLog), bitsToEncodeAnsSizeLog)

	nBins := len(m.Bins)
	if nBins == 0 {
		return fmt.Errorf("%w: a latent variable must have at least one bin", errs.ErrInvalidArgument)
	}
	w.WriteBits(uint64(nBins-1), int(m.AnsSizeLog)+1)

	offsetBitsWidth := bitsToEncodeOffsetBits(latentBitWidth)
	for _, b := range m.Bins {
		if b.Weight == 0 {
			return fmt.Errorf("%w: bin weight must be at least 1", errs.ErrInvalidArgument)
		}
		w.WriteBits(uint64(b.Weight-1), int(m.AnsSizeLog))
		w.WriteBits(uint64(b.Lower), latentBitWidth)
		w.WriteBits(uint64(b.OffsetBits), offsetBitsWidth)
	}

	return nil
}

// DecodeMeta is EncodeMeta's exact inverse. Which latent variables are
// present is derived from the decoded mode kind (Kind.NLatentVars), since
// the wire format doesn't repeat that information.
func DecodeMeta[L latent.Latent](r *bitio.Reader, numberType latent.NumberType, latentBitWidth int) (Meta[L], error) {
	var meta Meta[L]
	meta.NumberType = numberType

	tagRaw, err := r.ReadBits(bitsToEncodeModeTag)
	if err != nil {
		return meta, fmt.Errorf("reading mode tag: %w", err)
	}
	kind := mode.Kind(tagRaw)

	switch kind {
	case mode.KindClassic:
		meta.Mode = mode.Mode{Kind: mode.KindClassic}
	case mode.KindIntMult:
		base, err := readVarintPower(r)
		if err != nil {
			return meta, fmt.Errorf("reading int_mult base: %w", err)
		}
		meta.Mode = mode.Mode{Kind: mode.KindIntMult, IntBase: base}
	case mode.KindFloatMult:
		raw, err := r.ReadBits(64)
		if err != nil {
			return meta, fmt.Errorf("reading float_mult base: %w", err)
		}
		base := latent.Float64FromLatentBits(raw)
		meta.Mode = mode.Mode{Kind: mode.KindFloatMult, FloatBase: base, FloatInvBase: 1 / base}
	case mode.KindFloatQuant:
		kRaw, err := r.ReadBits(bitsToEncodeFloatQuantK)
		if err != nil {
			return meta, fmt.Errorf("reading float_quant k: %w", err)
		}
		meta.Mode = mode.Mode{Kind: mode.KindFloatQuant, QuantK: uint32(kRaw)}
	default:
		return meta, fmt.Errorf("%w: unknown mode tag %d", errs.ErrCorruption, tagRaw)
	}

	deltaTag, err := r.ReadBits(bitsToEncodeDeltaTag)
	if err != nil {
		return meta, fmt.Errorf("reading delta tag: %w", err)
	}
	if deltaTag == 0 {
		meta.Delta = DeltaSpec{Kind: DeltaNone}
	} else {
		orderRaw, err := r.ReadBits(bitsToEncodeDeltaOrder)
		if err != nil {
			return meta, fmt.Errorf("reading delta order: %w", err)
		}
		meta.Delta = DeltaSpec{Kind: DeltaConsecutive, Order: int(orderRaw)}
	}

	primary, err := decodeLatentVarMeta[L](r, latentBitWidth)
	if err != nil {
		return meta, fmt.Errorf("decoding primary latent var: %w", err)
	}
	meta.Vars.Primary = primary

	if kind.NLatentVars() == 2 {
		secondary, err := decodeLatentVarMeta[L](r, latentBitWidth)
		if err != nil {
			return meta, fmt.Errorf("decoding secondary latent var: %w", err)
		}
		meta.Vars.Secondary = &secondary
	}

	return meta, nil
}

func decodeLatentVarMeta[L latent.Latent](r *bitio.Reader, latentBitWidth int) (LatentVarMeta[L], error) {
	var m LatentVarMeta[L]

	ansSizeLogRaw, err := r.ReadBits(bitsToEncodeAnsSizeLog)
	if err != nil {
		return m, fmt.Errorf("reading ans_size_log: %w", err)
	}
	m.AnsSizeLog = uint32(ansSizeLogRaw)

	nBinsRaw, err := r.ReadBits(int(m.AnsSizeLog) + 1)
	if err != nil {
		return m, fmt.Errorf("reading bin count: %w", err)
	}
	nBins := int(nBinsRaw) + 1

	offsetBitsWidth := bitsToEncodeOffsetBits(latentBitWidth)
	m.Bins = make([]bin.CompressionInfo[L], nBins)
	for i := 0; i < nBins; i++ {
		weightRaw, err := r.ReadBits(int(m.AnsSizeLog))
		if err != nil {
			return m, fmt.Errorf("reading bin %d weight: %w", i, err)
		}
		lowerRaw, err := r.ReadBits(latentBitWidth)
		if err != nil {
			return m, fmt.Errorf("reading bin %d lower: %w", i, err)
		}
		offsetBitsRaw, err := r.ReadBits(offsetBitsWidth)
		if err != nil {
			return m, fmt.Errorf("reading bin %d offset_bits: %w", i, err)
		}
		m.Bins[i] = bin.CompressionInfo[L]{
			Weight:     uint32(weightRaw) + 1,
			Lower:      L(lowerRaw),
			OffsetBits: uint32(offsetBitsRaw),
			Token:      ans.Token(i),
		}
	}

	return m, nil
}
