package bin

import (
	"math"

	"github.com/arloliu/numcodec/ans"
	"github.com/arloliu/numcodec/latent"
)

// singleBinSpeedupWorthInBitsPerNum is the per-value bit cost we're willing
// to accept in exchange for collapsing the whole histogram into one bin,
// which lets decode skip a bin-lookup branch entirely.
const singleBinSpeedupWorthInBitsPerNum = 0.1

// CompressionInfo is a histogram bin annotated with everything needed to
// emit it on the wire and to drive the DP optimizer: its ANS token,
// quantized weight, and offset-bit width, alongside the raw value range it
// covers.
type CompressionInfo[L latent.Latent] struct {
	Lower      L
	Upper      L
	Weight     uint32
	Token      ans.Token
	OffsetBits uint32
}

// binMetaCost estimates the number of header bits a single bin costs to
// store: its ANS weight (ansSizeLog bits) plus its lower and upper bounds
// (bitWidth bits each). The reference cost model measures this exactly
// against the chunk metadata layout; this is a close approximation used in
// its place, since the exact layout constant wasn't available to ground
// against.
func binMetaCost(ansSizeLog uint32, bitWidth int) float64 {
	return float64(ansSizeLog) + 2*float64(bitWidth)
}

func binCost[L latent.Latent](metaCost float64, lower, upper L, count uint64, totalCountLog2 float64) float64 {
	ansCost := totalCountLog2 - math.Log2(float64(count))
	offsetCost := float64(bitsToEncodeOffset(uint64(upper - lower)))
	return metaCost + (ansCost+offsetCost)*float64(count)
}

type span struct {
	j, i int
}

// chooseOptimizedPartitioning runs the O(B^2) DP over raw histogram bins,
// finding the contiguous grouping that minimizes total estimated bit cost
// (bin metadata cost plus ANS and offset cost weighted by count), then
// compares that against collapsing everything into a single bin.
func chooseOptimizedPartitioning[L latent.Latent](bins []rawBin[L], ansSizeLog uint32, bitWidth int) []span {
	n := len(bins)
	cumCount := make([]uint64, n+1)
	for i, b := range bins {
		cumCount[i+1] = cumCount[i] + b.Count
	}
	totalCount := cumCount[n]
	totalCountLog2 := math.Log2(float64(totalCount))

	metaCost := binMetaCost(ansSizeLog, bitWidth)

	bestCosts := make([]float64, n+1)
	bestPartitionings := make([][]span, n+1)

	for i := 0; i < n; i++ {
		bestCost := math.MaxFloat64
		bestJ := -1
		upper := bins[i].Upper
		cumCountI := cumCount[i+1]

		for j := i; j >= 0; j-- {
			lower := bins[j].Lower
			cost := bestCosts[j] + binCost(metaCost, lower, upper, cumCountI-cumCount[j], totalCountLog2)
			if cost < bestCost {
				bestCost = cost
				bestJ = j
			}
		}

		bestCosts[i+1] = bestCost
		partitioning := make([]span, len(bestPartitionings[bestJ]), len(bestPartitionings[bestJ])+1)
		copy(partitioning, bestPartitionings[bestJ])
		partitioning = append(partitioning, span{j: bestJ, i: i})
		bestPartitionings[i+1] = partitioning
	}

	singleBinCost := binCost(metaCost, bins[0].Lower, bins[n-1].Upper, totalCount, totalCountLog2)
	if singleBinCost < bestCosts[n]+singleBinSpeedupWorthInBitsPerNum*float64(totalCount) {
		return []span{{j: 0, i: n - 1}}
	}
	return bestPartitionings[n]
}

// Optimize merges adjacent raw histogram bins where doing so reduces
// estimated total bit cost, assigning each surviving bin a sequential ANS
// token. bitWidth is the latent type's bit width, used only for the
// bin-metadata cost estimate. Each result's Weight holds the bin's raw
// count; quantizing it into an ANS weight is left to the caller.
func Optimize[L latent.Latent](latents []L, nBinsLog uint32, ansSizeLog uint32, bitWidth int) []CompressionInfo[L] {
	raw := histogram(latents, nBinsLog)
	if len(raw) == 0 {
		return nil
	}

	partitioning := chooseOptimizedPartitioning(raw, ansSizeLog, bitWidth)

	res := make([]CompressionInfo[L], len(partitioning))
	for token, sp := range partitioning {
		var count uint64
		for k := sp.j; k <= sp.i; k++ {
			count += raw[k].Count
		}
		res[token] = CompressionInfo[L]{
			Lower:      raw[sp.j].Lower,
			Upper:      raw[sp.i].Upper,
			Weight:     uint32(count),
			Token:      ans.Token(token),
			OffsetBits: bitsToEncodeOffset(uint64(raw[sp.i].Upper - raw[sp.j].Lower)),
		}
	}
	return res
}
