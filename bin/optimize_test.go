package bin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeRawBin(count uint64, lower, upper uint32) rawBin[uint32] {
	return rawBin[uint32]{Count: count, Lower: lower, Upper: upper}
}

func optimizeRaw(bins []rawBin[uint32], ansSizeLog uint32) []CompressionInfo[uint32] {
	partitioning := chooseOptimizedPartitioning(bins, ansSizeLog, 32)
	res := make([]CompressionInfo[uint32], len(partitioning))
	for token, sp := range partitioning {
		var count uint64
		for k := sp.j; k <= sp.i; k++ {
			count += bins[k].Count
		}
		res[token] = CompressionInfo[uint32]{
			Lower:      bins[sp.j].Lower,
			Upper:      bins[sp.i].Upper,
			Weight:     uint32(count),
			Token:      uint32(token),
			OffsetBits: bitsToEncodeOffset(uint64(bins[sp.i].Upper - bins[sp.j].Lower)),
		}
	}
	return res
}

func TestOptimizeBins(t *testing.T) {
	bins := []rawBin[uint32]{
		makeRawBin(100, 1, 16),
		makeRawBin(100, 33, 48),
		makeRawBin(100, 49, 64),
		makeRawBin(100, 65, 74),
		makeRawBin(50, 75, 79),
	}

	optimized := optimizeRaw(bins, 10)

	require.Equal(t, []CompressionInfo[uint32]{
		{Lower: 1, Upper: 16, Weight: 100, Token: 0, OffsetBits: 4},
		{Lower: 33, Upper: 64, Weight: 200, Token: 1, OffsetBits: 5},
		{Lower: 65, Upper: 79, Weight: 150, Token: 2, OffsetBits: 4},
	}, optimized)
}

func TestOptimizeBins_Enveloped(t *testing.T) {
	bins := []rawBin[uint32]{
		makeRawBin(1000, 0, 150),
		makeRawBin(1000, 200, 200),
	}

	optimized := optimizeRaw(bins, 10)

	require.Equal(t, []CompressionInfo[uint32]{
		{Lower: 0, Upper: 150, Weight: 1000, Token: 0, OffsetBits: 8},
		{Lower: 200, Upper: 200, Weight: 1000, Token: 1, OffsetBits: 0},
	}, optimized)
}
