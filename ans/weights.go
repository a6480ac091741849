package ans

import "math/bits"

// QuantizeWeightsTo converts observed bin counts into ANS weights summing
// to exactly 1<<sizeLog. A baseline weight of 1 is reserved for every bin
// (so no bin becomes unrepresentable), and the remainder is apportioned in
// proportion to how much each bin's count exceeds that baseline's share,
// then rounded and corrected to hit the exact target sum.
func QuantizeWeightsTo(counts []uint32, totalCount uint64, sizeLog uint32) []uint32 {
	if sizeLog == 0 {
		return []uint32{1}
	}

	targetWeightSum := uint32(1) << sizeLog
	multiplier := float64(targetWeightSum) / float64(totalCount)

	surplus := make([]float64, len(counts))
	totalSurplus := 0.0
	for i, count := range counts {
		s := float64(count)*multiplier - 1.0
		if s > 0 {
			surplus[i] = s
			totalSurplus += s
		}
	}

	targetSurplus := float64(targetWeightSum) - float64(len(counts))
	surplusMult := 0.0
	if totalSurplus > 0 {
		surplusMult = targetSurplus / totalSurplus
	}

	floatWeights := make([]float64, len(counts))
	for i := range counts {
		floatWeights[i] = 1.0 + surplus[i]*surplusMult
	}

	weights := make([]uint32, len(counts))
	weightSum := uint32(0)
	for i, fw := range floatWeights {
		w := uint32(roundHalfAwayFromZero(fw))
		weights[i] = w
		weightSum += w
	}

	i := 0
	for weightSum > targetWeightSum {
		if weights[i] > 1 && float64(weights[i]) > floatWeights[i] {
			weights[i]--
			weightSum--
		}
		i++
		if i >= len(weights) {
			i = 0
		}
	}
	i = 0
	for weightSum < targetWeightSum {
		if float64(weights[i]) < floatWeights[i] {
			weights[i]++
			weightSum++
		}
		i++
		if i >= len(weights) {
			i = 0
		}
	}

	return weights
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

// QuantizeWeights chooses both a table size log and the quantized weights
// for a set of bin counts, then strips any common power-of-2 factor from
// all weights (shrinking size_log to match) so the ANS table is no larger
// than it needs to be.
func QuantizeWeights(counts []uint32, totalCount uint64, minSizeLogFloor uint32) (uint32, []uint32) {
	if len(counts) == 1 {
		return 0, []uint32{1}
	}

	minSizeLog := uint32(bits.Len(uint(len(counts) - 1)))
	sizeLog := minSizeLog
	if minSizeLogFloor > sizeLog {
		sizeLog = minSizeLogFloor
	}

	weights := QuantizeWeightsTo(counts, totalCount, sizeLog)

	powerOf2 := uint32(32)
	for _, w := range weights {
		tz := uint32(bits.TrailingZeros32(w))
		if tz < powerOf2 {
			powerOf2 = tz
		}
	}
	sizeLog -= powerOf2
	for i := range weights {
		weights[i] >>= powerOf2
	}

	return sizeLog, weights
}
