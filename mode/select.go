package mode

// Bid is one candidate mode's pitch during selection: how many bits per
// value it expects to save versus Classic. The winner is the bid with the
// highest BitsSavedPerNum; Classic always bids 0 so it wins when nothing
// else clears its gate.
type Bid struct {
	Mode            Mode
	BitsSavedPerNum float64
}

func classicBid() Bid { return Bid{Mode: Classic, BitsSavedPerNum: 0} }

// bestBid returns the highest-scoring bid, Classic winning ties.
func bestBid(bids []Bid) Bid {
	best := classicBid()
	for _, b := range bids {
		if b.BitsSavedPerNum > best.BitsSavedPerNum {
			best = b
		}
	}
	return best
}

// SelectInt chooses a mode for a signed-integer-typed chunk: Classic or
// IntMult.
func SelectInt[T Int](nums []T) Mode {
	base, bitsSaved, ok := DetectIntMult(nums)
	if !ok {
		return Classic
	}
	return bestBid([]Bid{{
		Mode:            Mode{Kind: KindIntMult, IntBase: base},
		BitsSavedPerNum: bitsSaved,
	}}).Mode
}

// SelectFloat64 chooses a mode for a float64-typed chunk: Classic,
// FloatMult, or FloatQuant.
func SelectFloat64(nums []float64) Mode {
	var bids []Bid

	if base, invBase, bitsSaved, ok := DetectFloatMultF64(nums); ok {
		bids = append(bids, Bid{
			Mode:            Mode{Kind: KindFloatMult, FloatBase: base, FloatInvBase: invBase},
			BitsSavedPerNum: bitsSaved,
		})
	}
	if k, ok := DetectFloatQuantF64(nums); ok {
		bids = append(bids, Bid{
			Mode:            Mode{Kind: KindFloatQuant, QuantK: k},
			BitsSavedPerNum: float64(k),
		})
	}

	return bestBid(bids).Mode
}

// SelectFloat32 is SelectFloat64's float32 counterpart.
func SelectFloat32(nums []float32) Mode {
	var bids []Bid

	if k, ok := DetectFloatQuantF32(nums); ok {
		bids = append(bids, Bid{
			Mode:            Mode{Kind: KindFloatQuant, QuantK: k},
			BitsSavedPerNum: float64(k),
		})
	}

	return bestBid(bids).Mode
}
