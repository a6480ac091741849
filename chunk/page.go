package chunk

import (
	"fmt"

	"github.com/arloliu/numcodec/ans"
	"github.com/arloliu/numcodec/bin"
	"github.com/arloliu/numcodec/bitio"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/latent"
)

// AnsInterleaving is the number of independent ANS lanes a latent
// variable's page body is split across.
const AnsInterleaving = 4

// FullBatchN is the format's nominal batch size. encodeLatentVarPage and
// decodeLatentVarPage do not use it: they process a whole page at once, and
// the lane-encoded ANS stream runs continuously across the entire page
// rather than resetting per batch.
const FullBatchN = 256

type bitEmission struct {
	value   uint64
	numBits uint32
}

type laneStream struct {
	emissions  []bitEmission
	finalState uint64
}

// encodeLanes splits tokens round-robin across AnsInterleaving lanes (lane
// i%4 gets tokens at indices i, i+4, i+8, ...) and encodes each lane
// independently in reverse, per spec.md 4.6-4.7.
func encodeLanes(tokens []ans.Token, enc *ans.Encoder) [AnsInterleaving]laneStream {
	var laneTokens [AnsInterleaving][]ans.Token
	for i, t := range tokens {
		lane := i % AnsInterleaving
		laneTokens[lane] = append(laneTokens[lane], t)
	}

	var out [AnsInterleaving]laneStream
	for lane := 0; lane < AnsInterleaving; lane++ {
		toks := laneTokens[lane]
		emissions := make([]bitEmission, len(toks))
		state := enc.DefaultState()
		for i := len(toks) - 1; i >= 0; i-- {
			newState, renormBits := enc.Encode(state, toks[i])
			var mask uint64
			if renormBits < 64 {
				mask = uint64(1)<<renormBits - 1
			} else {
				mask = ^uint64(0)
			}
			emissions[i] = bitEmission{value: state & mask, numBits: renormBits}
			state = newState
		}
		out[lane] = laneStream{emissions: emissions, finalState: state}
	}

	return out
}

// laneCount returns how many of n round-robin-assigned tokens land in lane.
func laneCount(n, lane int) int {
	c := n / AnsInterleaving
	if lane < n%AnsInterleaving {
		c++
	}
	return c
}

// encodeLatentVarPage writes one latent variable's page body: the
// AnsInterleaving lane final states, the concatenated per-lane ANS bit
// streams, then every value's offset bits in original order.
func encodeLatentVarPage[L latent.Latent](w *bitio.Writer, values []L, spec *ans.Spec, bins []bin.CompressionInfo[L]) error {
	n := len(values)
	if n == 0 {
		return nil
	}
	ansSizeLog := spec.SizeLog

	tokens := make([]ans.Token, n)
	offsetBitsOf := make([]uint32, n)
	offsets := make([]uint64, n)
	for i, v := range values {
		idx := findBinIndex(bins, v)
		tokens[i] = bins[idx].Token
		offsetBitsOf[i] = bins[idx].OffsetBits
		offsets[i] = uint64(v - bins[idx].Lower)
	}

	enc := ans.NewEncoder(spec)
	lanes := encodeLanes(tokens, enc)

	for lane := 0; lane < AnsInterleaving; lane++ {
		stateOffset := lanes[lane].finalState - enc.DefaultState()
		w.WriteBits(stateOffset, int(ansSizeLog))
	}

	for lane := 0; lane < AnsInterleaving; lane++ {
		for _, e := range lanes[lane].emissions {
			w.WriteBits(e.value, int(e.numBits))
		}
	}

	for i := range values {
		w.WriteBits(offsets[i], int(offsetBitsOf[i]))
	}

	return nil
}

// decodeLatentVarPage is encodeLatentVarPage's exact inverse.
func decodeLatentVarPage[L latent.Latent](r *bitio.Reader, n int, spec *ans.Spec, bins []bin.CompressionInfo[L]) ([]L, error) {
	if n == 0 {
		return nil, nil
	}

	ansSizeLog := spec.SizeLog
	dec := ans.NewDecoder(spec)

	states := make([]uint64, AnsInterleaving)
	for lane := 0; lane < AnsInterleaving; lane++ {
		raw, err := r.ReadBits(int(ansSizeLog))
		if err != nil {
			return nil, fmt.Errorf("%w: reading ans lane %d final state: %v", errs.ErrInsufficientData, lane, err)
		}
		states[lane] = dec.DefaultState() + raw
	}

	tokens := make([]ans.Token, n)
	for lane := 0; lane < AnsInterleaving; lane++ {
		count := laneCount(n, lane)
		state := states[lane]
		for j := 0; j < count; j++ {
			tok, numBits := dec.BitsForState(state)
			origIdx := lane + j*AnsInterleaving
			tokens[origIdx] = tok

			consumed, err := r.ReadBits(int(numBits))
			if err != nil {
				return nil, fmt.Errorf("%w: reading ans bits for lane %d: %v", errs.ErrInsufficientData, lane, err)
			}
			state = dec.NextState(state, consumed)
		}
	}

	out := make([]L, n)
	for i := 0; i < n; i++ {
		b := bins[tokens[i]]
		offset, err := r.ReadBits(int(b.OffsetBits))
		if err != nil {
			return nil, fmt.Errorf("%w: reading offset for value %d: %v", errs.ErrInsufficientData, i, err)
		}
		out[i] = b.Lower + L(offset)
	}

	return out, nil
}
