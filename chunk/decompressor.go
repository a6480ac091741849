package chunk

import (
	"fmt"

	"github.com/arloliu/numcodec/ans"
	"github.com/arloliu/numcodec/bin"
	"github.com/arloliu/numcodec/bitio"
	"github.com/arloliu/numcodec/delta"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/latent"
	"github.com/arloliu/numcodec/mode"
)

// JoinFunc reconstructs a page's original numbers from its decoded primary
// and secondary latent variables, given the chunk's mode.
type JoinFunc[T any, L latent.Latent] func(primary, secondary []L, m mode.Mode) []T

// Decompressor holds a decoded chunk's metadata and reads pages against it.
// This is decompress_chunk_meta's return value extended with the decode
// operation from spec.md 6.
type Decompressor[T any, L latent.Latent] struct {
	meta     Meta[L]
	bitWidth int
	join     JoinFunc[T, L]
}

// DecodeChunkMeta decodes a chunk's metadata from r. This is
// decompress_chunk_meta from spec.md 6.
func DecodeChunkMeta[T any, L latent.Latent](r *bitio.Reader, numberType latent.NumberType, join JoinFunc[T, L]) (*Decompressor[T, L], error) {
	bitWidth := numberType.BitWidth()
	meta, err := DecodeMeta[L](r, numberType, bitWidth)
	if err != nil {
		return nil, fmt.Errorf("decoding chunk meta: %w", err)
	}
	return &Decompressor[T, L]{meta: meta, bitWidth: bitWidth, join: join}, nil
}

// Meta exposes the decoded chunk metadata (mode, delta spec, bin tables).
func (d *Decompressor[T, L]) Meta() Meta[L] {
	return d.meta
}

// DecompressPage decodes one page of n values: its delta moments (if
// delta is in use), its primary latent variable's body, its secondary
// latent variable's body (if the mode has one), un-deltas the primary
// stream, and joins the two latent streams back into T. n must match the
// page's original entry count (from Compressor.PageSizes on the encode
// side); the wire format has no per-page length field of its own.
func (d *Decompressor[T, L]) DecompressPage(r *bitio.Reader, n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}

	applyDelta := d.meta.Delta.Kind == DeltaConsecutive
	order := 0
	if applyDelta {
		order = d.meta.Delta.Order
	}

	var moments []L
	if applyDelta {
		moments = make([]L, order)
		for i := 0; i < order; i++ {
			raw, err := r.ReadBits(d.bitWidth)
			if err != nil {
				return nil, fmt.Errorf("%w: reading delta moment %d: %v", errs.ErrInsufficientData, i, err)
			}
			moments[i] = L(raw)
		}
	}

	primaryN := n - order
	if primaryN < 0 {
		return nil, fmt.Errorf("%w: page of %d entries too short for delta order %d", errs.ErrCorruption, n, order)
	}

	primarySpec := ans.NewSpec(d.meta.Vars.Primary.AnsSizeLog, weightsOf(d.meta.Vars.Primary.Bins))
	primary, err := decodeLatentVarPage(r, primaryN, primarySpec, d.meta.Vars.Primary.Bins)
	if err != nil {
		return nil, fmt.Errorf("decoding primary page body: %w", err)
	}

	if applyDelta {
		mid := delta.Mid[L]()
		delta.ToggleMid(primary, mid)
		primary = delta.Unapply(primary, moments)
	}

	var secondary []L
	if d.meta.Vars.Secondary != nil {
		secSpec := ans.NewSpec(d.meta.Vars.Secondary.AnsSizeLog, weightsOf(d.meta.Vars.Secondary.Bins))
		secondary, err = decodeLatentVarPage(r, n, secSpec, d.meta.Vars.Secondary.Bins)
		if err != nil {
			return nil, fmt.Errorf("decoding secondary page body: %w", err)
		}
	}

	return d.join(primary, secondary, d.meta.Mode), nil
}

// weightsOf extracts the per-token ANS weights from a decoded bin table, in
// token order (buildBins/decodeLatentVarMeta always assign tokens 0..n-1
// sequentially, so the slice index already is the token).
func weightsOf[L latent.Latent](bins []bin.CompressionInfo[L]) []uint32 {
	weights := make([]uint32, len(bins))
	for i, b := range bins {
		weights[i] = b.Weight
	}
	return weights
}
