// Package delta implements the Consecutive(order) delta transform: each of
// order passes replaces every value but the last with the (wrapping)
// difference from its successor, shortening the sequence by one per pass
// and capturing the value that pass discarded as a "moment" so decode can
// reconstruct it exactly.
package delta

import "github.com/arloliu/numcodec/latent"

// MaxOrder is the highest delta order the wire format can express.
const MaxOrder = 7

// Apply runs order consecutive-difference passes over a copy of page,
// returning the transformed (shorter) sequence and the order moments
// needed to invert it. page is not modified.
func Apply[L latent.Latent](page []L, order int) (transformed []L, moments []L) {
	buf := append([]L(nil), page...)
	moments = make([]L, order)

	for p := 0; p < order; p++ {
		if len(buf) == 0 {
			break
		}
		moments[p] = buf[0]
		for i := 0; i+1 < len(buf); i++ {
			buf[i] = buf[i+1] - buf[i]
		}
		buf = buf[:len(buf)-1]
	}

	return buf, moments
}

// Unapply is Apply's exact inverse: given the order-th differences and the
// moments Apply captured, it reconstructs the original page.
func Unapply[L latent.Latent](transformed []L, moments []L) []L {
	buf := append([]L(nil), transformed...)

	for p := len(moments) - 1; p >= 0; p-- {
		next := make([]L, len(buf)+1)
		next[0] = moments[p]
		for i := 0; i < len(buf); i++ {
			next[i+1] = next[i] + buf[i]
		}
		buf = next
	}

	return buf
}

// Mid returns the central latent value (1 << (bit_width-1)) used to toggle
// a delta-transformed stream so that a zero delta maps to the cheapest
// value to encode.
func Mid[L latent.Latent]() L {
	var zero L
	switch any(zero).(type) {
	case uint16:
		return L(uint16(1) << 15)
	case uint32:
		return L(uint32(1) << 31)
	case uint64:
		return L(uint64(1) << 63)
	default:
		return 0
	}
}

// ToggleMid XORs every element of xs with mid in place.
func ToggleMid[L latent.Latent](xs []L, mid L) {
	for i := range xs {
		xs[i] ^= mid
	}
}
