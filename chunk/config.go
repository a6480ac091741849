// Package chunk implements the chunk/page compression pipeline: mode
// selection, latent splitting, delta transformation, histogram binning, ANS
// entropy coding, and the bit-exact wire serialization that ties them
// together.
package chunk

import (
	"fmt"

	"github.com/arloliu/numcodec/delta"
	"github.com/arloliu/numcodec/errs"
)

// MaxCompressionLevel bounds ChunkConfig.CompressionLevel.
const MaxCompressionLevel = 12

// MaxDeltaEncodingOrder bounds DeltaSpec's Consecutive order.
const MaxDeltaEncodingOrder = delta.MaxOrder

// MaxEntriesPerChunk is the largest number of values a single chunk may
// hold (2^42), chosen so cumulative counts and bit offsets fit comfortably
// in 64-bit arithmetic with headroom for interleaving math.
const MaxEntriesPerChunk = uint64(1) << 42

// DeltaKind selects the family of delta transform a chunk's latent
// variables use.
type DeltaKind uint8

const (
	// DeltaNone applies no delta transform.
	DeltaNone DeltaKind = iota
	// DeltaConsecutive applies order-N consecutive differencing.
	DeltaConsecutive
	// DeltaLookback is reserved for a future non-consecutive delta
	// transform; constructing a DeltaSpec with this kind is refused.
	DeltaLookback
)

// DeltaSpec configures delta transformation for a chunk's primary latent
// variable. Secondary latent variables (IntMult/FloatMult/FloatQuant
// remainders) never receive delta encoding regardless of this spec, per
// SPEC_FULL.md 12.2.
type DeltaSpec struct {
	Kind  DeltaKind
	Order int
}

// Validate reports whether the spec is well-formed.
func (d DeltaSpec) Validate() error {
	switch d.Kind {
	case DeltaNone:
		return nil
	case DeltaConsecutive:
		if d.Order < 0 || d.Order > MaxDeltaEncodingOrder {
			return fmt.Errorf("%w: delta order %d out of range [0,%d]", errs.ErrInvalidArgument, d.Order, MaxDeltaEncodingOrder)
		}
		return nil
	case DeltaLookback:
		return fmt.Errorf("%w: lookback delta encoding is not implemented", errs.ErrInvalidArgument)
	default:
		return fmt.Errorf("%w: unknown delta kind %d", errs.ErrInvalidArgument, d.Kind)
	}
}

// PagingKind selects how a chunk's entries are split across pages.
type PagingKind uint8

const (
	// PagingEqualUpTo splits n entries into the fewest pages such that no
	// page exceeds MaxPageN, with counts as evenly balanced as possible.
	PagingEqualUpTo PagingKind = iota
	// PagingExact uses caller-supplied page counts verbatim.
	PagingExact
)

// PagingSpec configures how a chunk's entries are divided into pages.
type PagingSpec struct {
	Kind PagingKind

	// MaxPageN is EqualUpTo's per-page cap.
	MaxPageN int

	// Counts is Exact's caller-supplied per-page entry counts.
	Counts []int
}

// NPerPage computes the per-page entry counts for n total entries,
// following the reference implementation's n_per_page exactly: balanced
// division is used instead of greedy fill-to-max because compressed size is
// not concave in a page's entry count, so evening out page sizes tends to
// compress better than maximizing early pages.
func (p PagingSpec) NPerPage(n int) ([]int, error) {
	switch p.Kind {
	case PagingEqualUpTo:
		if p.MaxPageN <= 0 {
			return nil, fmt.Errorf("%w: paging max_page_n must be positive", errs.ErrInvalidArgument)
		}
		if n == 0 {
			return nil, nil
		}
		nPages := (n + p.MaxPageN - 1) / p.MaxPageN
		counts := make([]int, nPages)
		for i := 0; i < nPages; i++ {
			counts[i] = ((i+1)*n)/nPages - (i*n)/nPages
		}
		return counts, nil

	case PagingExact:
		sum := 0
		for _, c := range p.Counts {
			if c <= 0 {
				return nil, fmt.Errorf("%w: paging exact counts must all be positive", errs.ErrInvalidArgument)
			}
			sum += c
		}
		if sum != n {
			return nil, fmt.Errorf("%w: paging exact counts sum to %d, want %d", errs.ErrInvalidArgument, sum, n)
		}
		out := make([]int, len(p.Counts))
		copy(out, p.Counts)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown paging kind %d", errs.ErrInvalidArgument, p.Kind)
	}
}

// ModeSpec constrains which mode the selector is allowed to choose for a
// chunk. Auto lets the selector pick freely; Forced pins a specific kind
// (used by tests and by callers who already know their data's shape).
type ModeSpec struct {
	// Auto, when true, runs full mode selection. When false, ForcedClassic
	// determines the outcome.
	Auto          bool
	ForcedClassic bool
}

// AutoMode runs mode selection.
var AutoMode = ModeSpec{Auto: true}

// ClassicMode forces Classic, skipping mode detection entirely.
var ClassicMode = ModeSpec{Auto: false, ForcedClassic: true}

// ChunkConfig bundles every tunable a chunk compressor needs.
type ChunkConfig struct {
	CompressionLevel int
	Mode             ModeSpec
	Delta            DeltaSpec
	Paging           PagingSpec
}

// WithCompressionLevel returns a copy of c with CompressionLevel set,
// clamped to [0, MaxCompressionLevel].
func (c ChunkConfig) WithCompressionLevel(level int) ChunkConfig {
	if level < 0 {
		level = 0
	}
	if level > MaxCompressionLevel {
		level = MaxCompressionLevel
	}
	c.CompressionLevel = level
	return c
}

// WithMode returns a copy of c with Mode set.
func (c ChunkConfig) WithMode(m ModeSpec) ChunkConfig {
	c.Mode = m
	return c
}

// WithDelta returns a copy of c with Delta set.
func (c ChunkConfig) WithDelta(d DeltaSpec) ChunkConfig {
	c.Delta = d
	return c
}

// WithPaging returns a copy of c with Paging set.
func (c ChunkConfig) WithPaging(p PagingSpec) ChunkConfig {
	c.Paging = p
	return c
}

// DefaultConfig returns a ChunkConfig with a moderate compression level,
// automatic mode selection, no delta encoding, and pages of at most 1<<16
// entries (a single page for chunks up to that size).
func DefaultConfig() ChunkConfig {
	return ChunkConfig{
		CompressionLevel: 8,
		Mode:             AutoMode,
		Delta:            DeltaSpec{Kind: DeltaNone},
		Paging:           PagingSpec{Kind: PagingEqualUpTo, MaxPageN: 1 << 16},
	}
}

// NBinsLog returns the target histogram bin count log derived from
// CompressionLevel, capped at the implementation limit.
func (c ChunkConfig) NBinsLog() uint32 {
	log := c.CompressionLevel + 2
	if log > 12 {
		log = 12
	}
	if log < 0 {
		log = 0
	}
	return uint32(log)
}
