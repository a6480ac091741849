package ans

import "math/bits"

// tokenInfo precomputes everything Encoder.Encode needs for one token so
// the hot loop does no per-call floor(log2) work.
type tokenInfo struct {
	renormBitCutoff uint64
	minRenormBits   uint32
	// nextStates[x] holds the state to transition to when the shifted
	// state (x_s) equals weight+x, i.e. nextStates is indexed by
	// occurrence order, not by x_s directly.
	nextStates []uint64
}

func (ti *tokenInfo) nextStateFor(xs uint64) uint64 {
	return ti.nextStates[xs-uint64(len(ti.nextStates))]
}

// Encoder encodes tokens against a fixed Spec. Because ANS is inherently a
// backward (LIFO) coder, callers must process a batch from its end towards
// its start and buffer the (bits, bitCount) pairs Encode returns for later
// emission in reverse — see encodeLanes in chunk/page.go.
type Encoder struct {
	tokenInfos []tokenInfo
	sizeLog    uint32
}

// NewEncoder builds an Encoder from spec.
func NewEncoder(spec *Spec) *Encoder {
	tableSize := spec.TableSize()

	tokenInfos := make([]tokenInfo, len(spec.TokenWeights))
	for i, weight := range spec.TokenWeights {
		// x_s values for this token live in [weight, 2*weight); the
		// power of 2 within that range sets the minimum renormalization
		// bit count, and the cutoff tells us when one extra bit is
		// needed to stay in range.
		maxXs := 2*weight - 1
		minRenormBits := spec.SizeLog - uint32(bits.Len32(maxXs)-1)
		renormBitCutoff := uint64(2*weight) << minRenormBits
		tokenInfos[i] = tokenInfo{
			renormBitCutoff: renormBitCutoff,
			minRenormBits:   minRenormBits,
			nextStates:      make([]uint64, 0, weight),
		}
	}

	for stateIdx, token := range spec.StateTokens {
		ti := &tokenInfos[token]
		ti.nextStates = append(ti.nextStates, uint64(tableSize)+uint64(stateIdx))
	}

	return &Encoder{
		tokenInfos: tokenInfos,
		sizeLog:    spec.SizeLog,
	}
}

// Encode returns the new state and how many low bits of the *old* state
// must be written to the bit stream (most-significant bits beyond that
// count are insignificant and must not be written).
func (e *Encoder) Encode(state uint64, token Token) (newState uint64, renormBits uint32) {
	ti := &e.tokenInfos[token]
	renormBits = ti.minRenormBits
	if state >= ti.renormBitCutoff {
		renormBits++
	}
	return ti.nextStateFor(state >> renormBits), renormBits
}

// SizeLog returns the table size log this encoder was built with.
func (e *Encoder) SizeLog() uint32 { return e.sizeLog }

// DefaultState is the minimum in-range state, the lane's starting state for
// each page.
func (e *Encoder) DefaultState() uint64 { return uint64(1) << e.sizeLog }
