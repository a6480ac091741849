package chunk

import (
	"github.com/arloliu/numcodec/ans"
	"github.com/arloliu/numcodec/bin"
	"github.com/arloliu/numcodec/latent"
)

// buildBins histograms and optimizes latents (a copy; the input is left
// untouched), then quantizes the optimized bin counts into ANS weights,
// returning the resulting spec and per-bin compression info in token order.
func buildBins[L latent.Latent](latents []L, nBinsLog uint32, bitWidth int) (*ans.Spec, []bin.CompressionInfo[L]) {
	scratch := append([]L(nil), latents...)

	optimized := bin.Optimize(scratch, nBinsLog, nBinsLog, bitWidth)
	if len(optimized) == 0 {
		return ans.NewSpec(0, []uint32{1}), nil
	}

	counts := make([]uint32, len(optimized))
	totalCount := uint64(0)
	for i, b := range optimized {
		counts[i] = b.Weight
		totalCount += uint64(b.Weight)
	}

	sizeLog, weights := ans.QuantizeWeights(counts, totalCount, 0)
	for i := range optimized {
		optimized[i].Weight = weights[i]
		optimized[i].Token = ans.Token(i)
	}

	return ans.NewSpec(sizeLog, weights), optimized
}

// findBinIndex returns the index of the last bin whose Lower bound is <= v,
// assuming bins is sorted ascending and contiguous (as buildBins produces).
func findBinIndex[L latent.Latent](bins []bin.CompressionInfo[L], v L) int {
	lo, hi := 0, len(bins)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if bins[mid].Lower <= v {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
