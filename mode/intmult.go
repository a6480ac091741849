package mode

import (
	"math"
	"sort"
)

// Int is the constraint satisfied by the signed integer number types
// IntMult detection and splitting operate on.
type Int interface {
	~int16 | ~int32 | ~int64
}

// zeta2 is the Riemann zeta function at 2 (pi^2/6), the normalizing
// constant for the P(gcd(random pair) = g) ~= 1/(zeta(2)*g^2) prior used to
// score candidate multiplier bases.
const zeta2 = math.Pi * math.Pi / 6

// multRequiredBitsSavedPerNum is the minimum estimated bits-saved-per-value
// an IntMult candidate must clear to be worth the extra latent variable.
const multRequiredBitsSavedPerNum = 0.5

// requiredZScore is the minimum z-score a candidate GCD's observed
// triple-count must clear against the zeta(2) null distribution.
const requiredZScore = 3.0

// gcdInt64 returns the non-negative GCD of a and b.
func gcdInt64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// DetectIntMult samples triples from nums, computes their pairwise GCDs,
// and scores each distinct candidate GCD against a Riemann-zeta null
// distribution. It returns the best-scoring candidate base and the
// estimated bits saved per value, or ok=false if no candidate clears both
// the statistical and bits-saved gates.
func DetectIntMult[T Int](nums []T) (base uint64, bitsSavedPerNum float64, ok bool) {
	sample := Sample(nums, func(v T) (int64, bool) { return int64(v), true })
	if sample == nil {
		return 0, 0, false
	}

	sorted := append([]int64(nil), sample...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	counts := map[int64]int{}
	nTriples := 0
	for i := 0; i+2 < len(sorted); i += 3 {
		a, b, c := sorted[i], sorted[i+1], sorted[i+2]
		g := gcdInt64(b-a, c-a)
		if g > 1 {
			counts[g]++
		}
		nTriples++
	}
	if nTriples == 0 {
		return 0, 0, false
	}

	bestScore := -1.0
	var bestBase int64
	bestBitsSaved := 0.0

	for g, count := range counts {
		expected := float64(nTriples) / (zeta2 * float64(g) * float64(g))
		if expected <= 0 {
			continue
		}
		variance := expected
		z := (float64(count) - expected) / math.Sqrt(variance)
		if z < requiredZScore {
			continue
		}

		bitsSaved := math.Log2(float64(g)) - 1.0 // entropy of max-entropy residue vs. full range, rough estimate
		if bitsSaved < multRequiredBitsSavedPerNum {
			continue
		}

		if z > bestScore {
			bestScore = z
			bestBase = g
			bestBitsSaved = bitsSaved
		}
	}

	if bestScore < 0 {
		return 0, 0, false
	}
	if !hasEnoughInfrequentMults(sorted, bestBase) {
		return 0, 0, false
	}

	return uint64(bestBase), bestBitsSaved, true
}

// hasEnoughInfrequentMults rejects a candidate base when the sample's
// multiplier side (nums[i]/base) is constant, i.e. every sampled quotient
// is the same, since a constant quotient means Classic's plain offsets
// already encode the data cheaply and IntMult would only add an unnecessary
// secondary latent variable. Two or more distinct quotients pass.
func hasEnoughInfrequentMults(sample []int64, base int64) bool {
	seen := map[int64]int{}
	for _, v := range sample {
		seen[v/base]++
	}
	return len(seen) >= 2
}

// SplitIntMult divides each number by base, producing a quotient and a
// non-negative remainder in [0, base) even for negative inputs.
func SplitIntMult[T Int](nums []T, base T) (quotient, remainder []T) {
	quotient = make([]T, len(nums))
	remainder = make([]T, len(nums))
	for i, v := range nums {
		q := v / base
		r := v % base
		if r < 0 {
			r += base
			q--
		}
		quotient[i] = q
		remainder[i] = r
	}
	return quotient, remainder
}

// JoinIntMult is SplitIntMult's exact inverse.
func JoinIntMult[T Int](quotient, remainder []T, base T) []T {
	nums := make([]T, len(quotient))
	for i := range quotient {
		nums[i] = quotient[i]*base + remainder[i]
	}
	return nums
}
