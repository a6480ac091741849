package chunk

import (
	"fmt"

	"github.com/arloliu/numcodec/ans"
	"github.com/arloliu/numcodec/bin"
	"github.com/arloliu/numcodec/bitio"
	"github.com/arloliu/numcodec/delta"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/internal/pool"
	"github.com/arloliu/numcodec/latent"
	"github.com/arloliu/numcodec/mode"
)

// SplitFunc produces a chunk's primary and (for non-Classic modes)
// secondary latent variables from its original numbers, given an
// already-chosen mode.
type SplitFunc[T any, L latent.Latent] func(nums []T, m mode.Mode) (primary, secondary []L)

// SelectFunc runs mode selection over a chunk's numbers.
type SelectFunc[T any] func(nums []T, cfg ChunkConfig) mode.Mode

type latentVarBins[L latent.Latent] struct {
	spec *ans.Spec
	bins []bin.CompressionInfo[L]
}

// Compressor holds everything compress_chunk computes up front: the chosen
// mode, chunk metadata, per-page delta moments, and the paged latent data
// ready to dissect and write.
type Compressor[T any, L latent.Latent] struct {
	cfg        ChunkConfig
	numberType latent.NumberType
	bitWidth   int
	n          int

	mode  mode.Mode
	delta DeltaSpec

	primaryBins   latentVarBins[L]
	secondaryBins *latentVarBins[L]

	pageCounts    []int
	pagePrimary   [][]L
	pageSecondary [][]L
	pageMoments   [][]L
}

// Compress runs steps 1-6 of the pipeline (sample, select mode, split,
// delta, bins, ANS spec construction) over nums and returns a handle ready
// to emit metadata and pages. This is compress_chunk from spec.md 6.
func Compress[T any, L latent.Latent](nums []T, cfg ChunkConfig, numberType latent.NumberType, selectMode SelectFunc[T], split SplitFunc[T, L]) (*Compressor[T, L], error) {
	n := len(nums)
	if n == 0 {
		return nil, fmt.Errorf("%w: cannot compress empty chunk", errs.ErrInvalidArgument)
	}
	if uint64(n) > MaxEntriesPerChunk {
		return nil, fmt.Errorf("%w: chunk has %d entries, exceeds MAX_ENTRIES_PER_CHUNK", errs.ErrInvalidArgument, n)
	}
	if err := cfg.Delta.Validate(); err != nil {
		return nil, err
	}

	bitWidth := numberType.BitWidth()

	var m mode.Mode
	if cfg.Mode.Auto {
		m = selectMode(nums, cfg)
	} else if cfg.Mode.ForcedClassic {
		m = mode.Classic
	} else {
		m = mode.Classic
	}

	primary, secondary := split(nums, m)

	pageCounts, err := cfg.Paging.NPerPage(n)
	if err != nil {
		return nil, err
	}

	c := &Compressor[T, L]{
		cfg:        cfg,
		numberType: numberType,
		bitWidth:   bitWidth,
		n:          n,
		mode:       m,
		delta:      cfg.Delta,
		pageCounts: pageCounts,
	}

	order := 0
	applyDelta := cfg.Delta.Kind == DeltaConsecutive
	if applyDelta {
		order = cfg.Delta.Order
	}
	mid := delta.Mid[L]()

	offset := 0
	var combinedPrimary []L
	for _, count := range pageCounts {
		pagePrimary := primary[offset : offset+count]

		var transformed, moments []L
		if applyDelta {
			transformed, moments = delta.Apply(pagePrimary, order)
			delta.ToggleMid(transformed, mid)
		} else {
			transformed = append([]L(nil), pagePrimary...)
		}

		c.pagePrimary = append(c.pagePrimary, transformed)
		c.pageMoments = append(c.pageMoments, moments)
		combinedPrimary = append(combinedPrimary, transformed...)

		if secondary != nil {
			c.pageSecondary = append(c.pageSecondary, secondary[offset:offset+count])
		}

		offset += count
	}

	nBinsLog := cfg.NBinsLog()
	primarySpec, primaryBins := buildBins(combinedPrimary, nBinsLog, bitWidth)
	c.primaryBins = latentVarBins[L]{spec: primarySpec, bins: primaryBins}

	if secondary != nil {
		secSpec, secBins := buildBins(secondary, nBinsLog, bitWidth)
		c.secondaryBins = &latentVarBins[L]{spec: secSpec, bins: secBins}
	}

	return c, nil
}

// Meta returns the chunk metadata WriteMeta would serialize, without
// writing anything. Useful for callers (benchmarks, logging) that want the
// chosen mode or bin layout without a bitio.Writer on hand.
func (c *Compressor[T, L]) Meta() Meta[L] {
	metaVars := PerLatentVar[LatentVarMeta[L]]{
		Primary: LatentVarMeta[L]{AnsSizeLog: c.primaryBins.spec.SizeLog, Bins: c.primaryBins.bins},
	}
	if c.secondaryBins != nil {
		metaVars.Secondary = &LatentVarMeta[L]{AnsSizeLog: c.secondaryBins.spec.SizeLog, Bins: c.secondaryBins.bins}
	}

	return Meta[L]{
		NumberType: c.numberType,
		Mode:       c.mode,
		Delta:      c.delta,
		Vars:       metaVars,
	}
}

// WriteMeta emits the chunk's metadata.
func (c *Compressor[T, L]) WriteMeta(w *bitio.Writer) error {
	return EncodeMeta(w, c.Meta(), c.bitWidth)
}

// PageSizes returns the per-page entry counts chosen by the paging spec.
func (c *Compressor[T, L]) PageSizes() []int {
	out := make([]int, len(c.pageCounts))
	copy(out, c.pageCounts)
	return out
}

// WritePage emits page pageIdx: its delta moments (if delta is in use),
// then its primary latent variable's body, then its secondary latent
// variable's body (if the mode has one).
func (c *Compressor[T, L]) WritePage(pageIdx int, w *bitio.Writer) error {
	if pageIdx < 0 || pageIdx >= len(c.pageCounts) {
		return fmt.Errorf("%w: page index %d out of range [0,%d)", errs.ErrInvalidArgument, pageIdx, len(c.pageCounts))
	}

	for _, moment := range c.pageMoments[pageIdx] {
		w.WriteBits(uint64(moment), c.bitWidth)
	}

	if err := encodeLatentVarPage(w, c.pagePrimary[pageIdx], c.primaryBins.spec, c.primaryBins.bins); err != nil {
		return fmt.Errorf("writing primary page body: %w", err)
	}

	if c.secondaryBins != nil {
		if err := encodeLatentVarPage(w, c.pageSecondary[pageIdx], c.secondaryBins.spec, c.secondaryBins.bins); err != nil {
			return fmt.Errorf("writing secondary page body: %w", err)
		}
	}

	return nil
}

// WriteChunk writes metadata followed by every page's body into buf,
// aligning to a byte boundary between the metadata and each page. This is
// a convenience wrapper around WriteMeta/WritePage for callers that don't
// need page-at-a-time streaming.
func (c *Compressor[T, L]) WriteChunk(buf *pool.ByteBuffer) error {
	w := bitio.NewWriter(buf)
	if err := c.WriteMeta(w); err != nil {
		return err
	}
	w.Finish()

	for pageIdx := range c.pageCounts {
		w.Reset(buf)
		if err := c.WritePage(pageIdx, w); err != nil {
			return err
		}
		w.Finish()
	}

	return nil
}
