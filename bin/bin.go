// Package bin builds and optimizes the histogram bins that back a chunk's
// ANS tables: a sorted partition of a latent variable's range into a small
// number of bins, each carrying a count (used to derive ANS weights), a
// lower bound, and an offset width (the number of additional bits needed to
// locate a value within the bin).
package bin

import (
	"math/bits"

	"github.com/arloliu/numcodec/latent"
)

// Bin is one entry of a chunk's bin table: Lower is the bin's inclusive
// lower bound in latent-ordered space, OffsetBits is how many extra bits
// follow the ANS token to pin down the exact value within [Lower, Upper],
// and Weight is the bin's ANS weight (not its raw count; see
// QuantizeWeights). Unlike the reference implementation this omits a
// per-bin GCD-stripping optimization: SPEC_FULL.md's bin model only needs
// Lower/OffsetBits/Weight, and carrying a GCD multiplies every offset
// decode by a division for a compression gain this module does not chase.
type Bin[L latent.Latent] struct {
	Lower      L
	OffsetBits uint32
	Weight     uint32
}

// rawBin is the intermediate histogram output before weight quantization:
// a contiguous count of latents in [Lower, Upper].
type rawBin[L latent.Latent] struct {
	Count uint64
	Lower L
	Upper L
}

// bitsToEncodeOffset returns the number of bits needed to encode an offset
// in the inclusive range [0, span].
func bitsToEncodeOffset(span uint64) uint32 {
	if span == 0 {
		return 0
	}
	return uint32(bits.Len64(span))
}

func (b rawBin[L]) offsetBits() uint32 {
	return bitsToEncodeOffset(uint64(b.Upper - b.Lower))
}
