// Package ans implements a table-based asymmetric numeral system (tANS):
// deterministic spread-table construction from integer symbol weights, a
// backward (LIFO) encoder, and its matching forward decoder.
//
// Four lanes are normally run in lockstep (Interleaving = 4) so a decode
// loop can process four tokens per iteration; this package itself is
// lane-agnostic and leaves interleaving to the caller (see chunk/page.go)
// since it is purely a batching strategy over independent Encoder/Decoder
// instances sharing one Spec.
package ans

// Token identifies a symbol (bin index) within a Spec's alphabet.
type Token = uint32

// MaxSizeLog is the largest supported ANS table size log (2^12 = 4096
// states). Bounded by the wire format's BITS_TO_ENCODE_ANS_SIZE_LOG field
// width.
const MaxSizeLog = 12

// Spec is the deterministic, backward-compatible table layout derived from
// a set of per-symbol weights: which token occupies each state.
type Spec struct {
	SizeLog      uint32
	StateTokens  []Token
	TokenWeights []uint32
}

// chooseStride picks the relatively-prime (odd) stride near 3/5 of the
// table size used to spread tokens across states. This keeps uncommon
// tokens (weight 2-5) from clustering, without needing true randomness, so
// the layout stays reproducible across implementations of this format.
func chooseStride(tableSize uint32) uint32 {
	res := (3 * tableSize) / 5
	if res%2 == 0 {
		res++
	}
	return res
}

// spreadStateTokens lays out tableSize states, each holding the token that
// should occupy it, by walking the table with chooseStride's stride and
// wrapping modulo tableSize (a power of 2, so the wrap is a mask).
func spreadStateTokens(sizeLog uint32, tokenWeights []uint32) []Token {
	var tableSize uint32
	for _, w := range tokenWeights {
		tableSize += w
	}

	res := make([]Token, tableSize)
	stride := chooseStride(tableSize)
	mask := tableSize - 1

	step := uint32(0)
	for token, weight := range tokenWeights {
		for i := uint32(0); i < weight; i++ {
			stateIdx := (stride * step) & mask
			res[stateIdx] = Token(token)
			step++
		}
	}
	return res
}

// NewSpec builds a Spec from per-symbol weights, which must sum to
// 1<<sizeLog. An empty weight list is treated as a single trivial symbol of
// weight 1 (size_log 0), matching the "all one bin" chunk case.
func NewSpec(sizeLog uint32, tokenWeights []uint32) *Spec {
	if len(tokenWeights) == 0 {
		tokenWeights = []uint32{1}
	}

	return &Spec{
		SizeLog:      sizeLog,
		StateTokens:  spreadStateTokens(sizeLog, tokenWeights),
		TokenWeights: tokenWeights,
	}
}

// TableSize returns 1<<SizeLog.
func (s *Spec) TableSize() uint32 {
	return uint32(1) << s.SizeLog
}
