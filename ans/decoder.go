package ans

import "math/bits"

// decodeSlot is the per-state-index decode table entry: which token occupies
// this state, how many bits to consume, and the baseline to add them to.
type decodeSlot struct {
	token           Token
	numBits         uint32
	newStateBaseRaw uint64 // x_s << numBits; add the consumed bits to get the next state
}

// Decoder is the forward-reading counterpart to Encoder: built from the same
// Spec, it recovers exactly the token sequence an Encoder emitted for that
// spec, including exact state round-trip (decoding ends at DefaultState()
// given a valid stream).
type Decoder struct {
	slots   []decodeSlot
	sizeLog uint32
}

// NewDecoder builds a Decoder from spec.
func NewDecoder(spec *Spec) *Decoder {
	tableSize := spec.TableSize()
	slots := make([]decodeSlot, tableSize)

	// occurrence[token] counts how many state slots assigned to token we
	// have seen so far, scanning state_idx ascending — this reproduces
	// the x_s assignment the encoder used (x_s = weight + occurrence).
	occurrence := make([]uint32, len(spec.TokenWeights))
	for stateIdx, token := range spec.StateTokens {
		weight := spec.TokenWeights[token]
		xs := uint64(weight) + uint64(occurrence[token])
		occurrence[token]++

		numBits := spec.SizeLog - uint32(bits.Len64(xs)-1)
		slots[stateIdx] = decodeSlot{
			token:           token,
			numBits:         numBits,
			newStateBaseRaw: xs << numBits,
		}
	}

	return &Decoder{slots: slots, sizeLog: spec.SizeLog}
}

// SizeLog returns the table size log this decoder was built with.
func (d *Decoder) SizeLog() uint32 { return d.sizeLog }

// DefaultState is the minimum in-range state; lanes start decoding here.
func (d *Decoder) DefaultState() uint64 { return uint64(1) << d.sizeLog }

// BitsForState returns how many bits must be read from the stream to
// advance past state, and the token encoded at it. Callers read that many
// bits and pass them to NextState to obtain the new state.
func (d *Decoder) BitsForState(state uint64) (token Token, numBits uint32) {
	slot := &d.slots[state-d.DefaultState()]
	return slot.token, slot.numBits
}

// NextState computes the state after consuming consumedBits (the numBits
// bits BitsForState asked for, read LSB-first from the stream) while at
// state.
func (d *Decoder) NextState(state uint64, consumedBits uint64) uint64 {
	slot := &d.slots[state-d.DefaultState()]
	return slot.newStateBaseRaw + consumedBits
}
