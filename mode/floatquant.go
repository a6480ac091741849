package mode

import (
	"math"
	"math/bits"

	"github.com/arloliu/numcodec/latent"
)

// floatQuantMinK is the smallest truncation width FloatQuant is allowed to
// pick; below this the mode isn't worth the extra latent variable.
const floatQuantMinK = 3

// floatQuantPercentile is the fraction of sampled values that must have at
// least k trailing zero mantissa bits for k to be accepted.
const floatQuantPercentile = 0.90

const (
	f64MantissaBits = 52
	f32MantissaBits = 23
)

func trailingZeroMantissaBitsF64(x float64) uint32 {
	bitsVal := math.Float64bits(x)
	mantissa := bitsVal & ((1 << f64MantissaBits) - 1)
	if mantissa == 0 {
		return f64MantissaBits
	}
	return uint32(bits.TrailingZeros64(mantissa))
}

func trailingZeroMantissaBitsF32(x float32) uint32 {
	bitsVal := math.Float32bits(x)
	mantissa := bitsVal & ((1 << f32MantissaBits) - 1)
	if mantissa == 0 {
		return f32MantissaBits
	}
	return uint32(bits.TrailingZeros32(mantissa))
}

// bestPercentileK picks the largest k such that at least
// floatQuantPercentile of tzCounts are >= k, returning ok=false if that k
// is below floatQuantMinK.
func bestPercentileK(tzCounts []uint32, maxBits uint32) (uint32, bool) {
	if len(tzCounts) == 0 {
		return 0, false
	}
	hist := make([]int, maxBits+1)
	for _, tz := range tzCounts {
		hist[tz]++
	}

	threshold := int(math.Ceil(floatQuantPercentile * float64(len(tzCounts))))
	cum := 0
	for k := int(maxBits); k >= 0; k-- {
		cum += hist[k]
		if cum >= threshold {
			if uint32(k) >= floatQuantMinK {
				return uint32(k), true
			}
			return 0, false
		}
	}
	return 0, false
}

// DetectFloatQuantF64 samples nums and proposes the largest FloatQuant
// truncation width k that at least 90% of the sample supports.
func DetectFloatQuantF64(nums []float64) (k uint32, ok bool) {
	sample := Sample(nums, func(v float64) (uint32, bool) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return trailingZeroMantissaBitsF64(v), true
	})
	return bestPercentileK(sample, f64MantissaBits)
}

// DetectFloatQuantF32 is DetectFloatQuantF64's float32 counterpart.
func DetectFloatQuantF32(nums []float32) (k uint32, ok bool) {
	sample := Sample(nums, func(v float32) (uint32, bool) {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return 0, false
		}
		return trailingZeroMantissaBitsF32(v), true
	})
	return bestPercentileK(sample, f32MantissaBits)
}

// SplitFloatQuantF64 splits each float's latent bit pattern into a
// truncated primary (the top bits) and a secondary remainder (the bottom k
// bits), per spec.md's FloatQuant(k) latent splitting rule.
func SplitFloatQuantF64(nums []float64, k uint32) (primary []uint64, secondary []uint64) {
	mask := uint64(1)<<k - 1
	primary = make([]uint64, len(nums))
	secondary = make([]uint64, len(nums))
	for i, v := range nums {
		b := latent.Float64ToLatentBits(v)
		primary[i] = b >> k
		secondary[i] = b & mask
	}
	return primary, secondary
}

// JoinFloatQuantF64 is SplitFloatQuantF64's exact inverse.
func JoinFloatQuantF64(primary, secondary []uint64, k uint32) []float64 {
	nums := make([]float64, len(primary))
	for i := range primary {
		b := (primary[i] << k) | secondary[i]
		nums[i] = latent.Float64FromLatentBits(b)
	}
	return nums
}

// SplitFloatQuantF32 is SplitFloatQuantF64's float32 counterpart.
func SplitFloatQuantF32(nums []float32, k uint32) (primary []uint32, secondary []uint32) {
	mask := uint32(1)<<k - 1
	primary = make([]uint32, len(nums))
	secondary = make([]uint32, len(nums))
	for i, v := range nums {
		b := latent.Float32ToLatentBits(v)
		primary[i] = b >> k
		secondary[i] = b & mask
	}
	return primary, secondary
}

// JoinFloatQuantF32 is SplitFloatQuantF32's exact inverse.
func JoinFloatQuantF32(primary, secondary []uint32, k uint32) []float32 {
	nums := make([]float32, len(primary))
	for i := range primary {
		b := (primary[i] << k) | secondary[i]
		nums[i] = latent.Float32FromLatentBits(b)
	}
	return nums
}
