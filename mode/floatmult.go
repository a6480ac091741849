package mode

import (
	"math"
	"sort"

	"github.com/arloliu/numcodec/latent"
)

// floatMultRequiredBitsSavedPerNum mirrors multRequiredBitsSavedPerNum for
// the float base detector's final gate.
const floatMultRequiredBitsSavedPerNum = 0.5

// snapRelativeTolerance is how close a candidate base must land to a clean
// decimal (1/10^d) or integer reciprocal (1/n) before it's snapped to it.
const snapRelativeTolerance = 0.01

// DetectFloatMultF64 proposes a multiplicative base B such that most
// sampled values are (approximately) integer multiples of B. It tries two
// strategies and keeps whichever clears the bits-saved gate with the higher
// estimate:
//
//  1. trailing-zeros: extract samples with several trailing zero mantissa
//     bits, scale them to integers, and reuse the IntMult GCD detector.
//  2. gap clustering: group the gaps between adjacent sorted sample values
//     that agree within a relative tolerance and take the most frequent gap
//     as the base. No GCD reduction is applied to the gaps.
//
// This is a simplified stand-in for the reference implementation's full
// error-propagation accounting: it trades some detection sensitivity on
// noisy data for a much smaller, easier-to-verify surface.
func DetectFloatMultF64(nums []float64) (base, invBase, bitsSavedPerNum float64, ok bool) {
	sample := Sample(nums, func(v float64) (float64, bool) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
			return 0, false
		}
		return v, true
	})
	if sample == nil {
		return 0, 0, 0, false
	}

	tzBase, tzBits, tzOK := trailingZerosBase(sample)
	eucBase, eucBits, eucOK := euclideanBase(sample)

	var candidate float64
	var bitsSaved float64
	switch {
	case tzOK && (!eucOK || tzBits >= eucBits):
		candidate, bitsSaved = tzBase, tzBits
	case eucOK:
		candidate, bitsSaved = eucBase, eucBits
	default:
		return 0, 0, 0, false
	}

	if bitsSaved < floatMultRequiredBitsSavedPerNum {
		return 0, 0, 0, false
	}

	candidate = snapBase(candidate)
	if candidate <= 0 {
		return 0, 0, 0, false
	}

	return candidate, 1.0 / candidate, bitsSaved, true
}

// trailingZerosBase extracts the scale implied by samples whose mantissa
// has at least 5 trailing zero bits and that round-trip cleanly through a
// small power-of-ten scaling (i.e. are, within float rounding error, exact
// multiples of 10^-d for some small d), then runs the IntMult GCD detector
// on the scaled integers.
func trailingZerosBase(sample []float64) (base float64, bitsSaved float64, ok bool) {
	for d := 0; d <= 6; d++ {
		scale := math.Pow(10, float64(d))
		var scaled []int64
		for _, v := range sample {
			if trailingZeroMantissaBitsF64(v) < 5 {
				continue
			}
			rounded := math.Round(v * scale)
			if math.Abs(v*scale-rounded) > 1e-6*math.Max(1, math.Abs(rounded)) {
				continue
			}
			scaled = append(scaled, int64(rounded))
		}
		if len(scaled) < MinSample {
			continue
		}

		g, bits, detected := DetectIntMult(scaled)
		if !detected {
			continue
		}
		return float64(g) / scale, bits, true
	}
	return 0, 0, false
}

// euclideanBase sorts the sample, groups the positive gaps between adjacent
// values that lie within snapRelativeTolerance of each other, and returns
// the most frequent gap (seen at least twice) as the base. No GCD reduction
// is applied to the gaps.
func euclideanBase(sample []float64) (base float64, bitsSaved float64, ok bool) {
	if len(sample) < 4 {
		return 0, 0, false
	}

	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)

	type bucket struct {
		base  float64
		count int
	}
	var buckets []bucket

	for i := 0; i+1 < len(sorted); i++ {
		diff := sorted[i+1] - sorted[i]
		if diff <= 0 {
			continue
		}
		placed := false
		for j := range buckets {
			if relClose(buckets[j].base, diff, snapRelativeTolerance) {
				buckets[j].count++
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{base: diff, count: 1})
		}
	}
	if len(buckets) == 0 {
		return 0, 0, false
	}

	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.count > best.count {
			best = b
		}
	}
	if best.count < 2 {
		return 0, 0, false
	}

	mean := 0.0
	for _, v := range sorted {
		mean += math.Abs(v)
	}
	mean /= float64(len(sorted))
	if mean <= 0 || best.base <= 0 {
		return 0, 0, false
	}

	// Rough entropy estimate: bits saved by encoding an offset within
	// [0, base) instead of the full observed value range.
	bitsSaved = math.Log2(mean) - math.Log2(best.base)

	return best.base, bitsSaved, true
}

func relClose(a, b, tol float64) bool {
	if a == 0 || b == 0 {
		return a == b
	}
	return math.Abs(a-b)/math.Max(math.Abs(a), math.Abs(b)) <= tol
}

// snapBase rounds a candidate base to the nearest clean decimal (1/10^d for
// small d) or integer reciprocal (1/n) when doing so changes it by less
// than snapRelativeTolerance, since a clean base is both easier to reason
// about and no worse for compression.
func snapBase(base float64) float64 {
	for d := 0; d <= 9; d++ {
		decimal := math.Pow(10, -float64(d))
		if relClose(base, decimal, snapRelativeTolerance) {
			return decimal
		}
	}
	if base > 0 {
		n := math.Round(1 / base)
		if n >= 1 {
			recip := 1 / n
			if relClose(base, recip, snapRelativeTolerance) {
				return recip
			}
		}
	}
	return base
}

// SplitFloatMultF64 implements spec.md's FloatMult(B, invB) latent split:
// mult = round(x*invB); primary is mult encoded as an ordered integer
// latent; secondary is the float-ordered difference between x and
// mult*B, centered by XOR with mid so small adjustments in either
// direction are equally cheap to encode.
func SplitFloatMultF64(nums []float64, base, invBase float64) (primary []uint64, secondary []uint64) {
	const mid = uint64(1) << 63
	primary = make([]uint64, len(nums))
	secondary = make([]uint64, len(nums))
	for i, x := range nums {
		mult := math.Round(x * invBase)
		primary[i] = latent.Int64ToLatentOrdered(int64(mult))
		approx := mult * base
		secondary[i] = (latent.Float64ToLatentOrdered(x) - latent.Float64ToLatentOrdered(approx)) ^ mid
	}
	return primary, secondary
}

// JoinFloatMultF64 is SplitFloatMultF64's exact inverse.
func JoinFloatMultF64(primary, secondary []uint64, base float64) []float64 {
	const mid = uint64(1) << 63
	nums := make([]float64, len(primary))
	for i := range primary {
		mult := float64(latent.LatentOrderedToInt64(primary[i]))
		approx := mult * base
		diff := secondary[i] ^ mid
		xLatent := latent.Float64ToLatentOrdered(approx) + diff
		nums[i] = latent.Float64FromLatentOrdered(xLatent)
	}
	return nums
}
