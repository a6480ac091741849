package mode

import "math"

// MinSample is the smallest slice length mode selection will bother
// sampling; chunks below this size always use Classic.
const MinSample = 10

// SampleRatio controls how slowly the sample grows with input size: one
// additional sample for every SampleRatio extra values.
const SampleRatio = 40

// jitterPeriod is the period, in sample indices, of the sinusoidal offset
// added to each evenly-spaced sample position, which keeps the sample from
// aliasing against periodic input.
const jitterPeriod = 16

// Sample draws a small, evenly-spaced (plus anti-aliasing jitter) subset of
// nums, runs it through filter, and returns the surviving mapped values. It
// returns nil if nums is too small to sample meaningfully, or if too few
// samples survive the filter.
func Sample[T any, S any](nums []T, filter func(T) (S, bool)) []S {
	n := len(nums)
	if n < MinSample {
		return nil
	}

	numSamples := MinSample + (n-MinSample)/SampleRatio
	if numSamples <= 0 {
		return nil
	}

	stride := n / numSamples
	amplitude := stride / 4

	out := make([]S, 0, numSamples)
	for i := 0; i < numSamples; i++ {
		base := i * n / numSamples
		jitter := 0
		if amplitude > 0 {
			jitter = int(math.Round(float64(amplitude) * math.Sin(2*math.Pi*float64(i%jitterPeriod)/jitterPeriod)))
		}

		idx := base + jitter
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}

		if s, ok := filter(nums[idx]); ok {
			out = append(out, s)
		}
	}

	if len(out) <= MinSample {
		return nil
	}
	return out
}
