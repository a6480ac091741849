package bin

import "github.com/arloliu/numcodec/latent"

// choosePivot picks a pivot value near the median of latents using a
// median-of-three sample (indices len/4, len/2, 3*len/4), which is enough
// to avoid the worst-case partitions that a fixed-position pivot would hit
// on already-sorted or adversarially-ordered input. The original algorithm
// switches to a median-of-medians-of-three sample for slices of 50+
// elements for a further constant-factor speedup; this port always uses the
// simple three-sample median, since it affects only recursion balance, not
// correctness or the final bin boundaries.
func choosePivot[L latent.Latent](xs []L) L {
	n := len(xs)
	a, b, c := n/4, n/2, (n*3)/4

	va, vb, vc := xs[a], xs[b], xs[c]
	if vb < va {
		va, vb = vb, va
	}
	if vc < vb {
		vb, vc = vc, vb
	}
	if vb < va {
		va, vb = vb, va
	}

	return vb
}

// partition performs a Lomuto partition of xs around pivot (elements <
// pivot go left), returning the count of elements that ended up left of the
// pivot and whether the pivot produced a poor (<1/8) split.
func partition[L latent.Latent](xs []L, pivot L) (leftCount int, wasBadPivot bool) {
	left := 0
	for i := 0; i < len(xs); i++ {
		if xs[i] < pivot {
			xs[i], xs[left] = xs[left], xs[i]
			left++
		}
	}

	wasBadPivot = 1+min(left, len(xs)-left) < len(xs)/8
	return left, wasBadPivot
}

// heapsort sorts xs ascending in O(n log n) worst case; used as the
// quicksort recursion's safety valve once its depth limit is used up.
func heapsort[L latent.Latent](xs []L) {
	siftDown := func(x []L, node int) {
		for {
			child := 2*node + 1
			if child >= len(x) {
				break
			}
			if child+1 < len(x) && x[child] < x[child+1] {
				child++
			}
			if x[node] >= x[child] {
				break
			}
			x[node], x[child] = x[child], x[node]
			node = child
		}
	}

	for i := len(xs)/2 - 1; i >= 0; i-- {
		siftDown(xs, i)
	}
	for i := len(xs) - 1; i >= 1; i-- {
		xs[0], xs[i] = xs[i], xs[0]
		siftDown(xs[:i], 0)
	}
}
