// Package numcodec implements a lossless columnar compressor for fixed-width
// numeric data: signed and unsigned integers, IEEE-754 floats, and
// timestamps.
//
// numcodec compresses one chunk at a time. A chunk samples its own numbers to
// pick a compression mode (Classic, IntMult, FloatMult, or FloatQuant),
// optionally applies consecutive-delta encoding, splits into pages, and
// entropy-codes each page with a table-based ANS (asymmetric numeral system)
// coder driven by a histogram-optimized bin layout. The result is usually
// within a few percent of the Shannon limit for the chosen mode, computed in
// time roughly linear in the chunk's size.
//
// # Core Features
//
//   - Automatic mode selection: integer multiplier/remainder splitting,
//     float multiplier splitting, and float mantissa quantization, each
//     falling back to a plain ("Classic") encoding when it wouldn't help
//   - Consecutive-order delta encoding for slowly-varying or monotonic data
//   - Histogram-optimized binning with a dynamic-programming bin merger
//   - 4-lane interleaved tANS entropy coding
//   - Independently decodable pages within a chunk
//
// # Basic Usage
//
// Compressing a chunk of float64s:
//
//	import (
//	    "github.com/arloliu/numcodec/chunk"
//	    "github.com/arloliu/numcodec/internal/pool"
//	)
//
//	cfg := chunk.DefaultConfig()
//	compressor, err := chunk.CompressFloat64(values, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	metaBuf := pool.GetChunkBuffer()
//	compressor.WriteChunk(metaBuf)
//
// Decompressing it back:
//
//	r := bitio.NewReader(metaBuf.Bytes())
//	dec, err := chunk.DecodeFloat64ChunkMeta(r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.AlignToByte()
//	var decoded []float64
//	for _, n := range compressor.PageSizes() { // page sizes are not stored in the chunk
//	    page, err := dec.DecompressPage(r, n)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    decoded = append(decoded, page...)
//	    r.AlignToByte()
//	}
//
// # Package Structure
//
// This root package is documentation only. The implementation lives in:
//
//   - chunk: the external interface (Compress*/Decode*ChunkMeta/Decompressor)
//     and the chunk/page wire format
//   - mode: mode sampling, detection, and latent-variable split/join
//   - delta: consecutive-difference delta transform
//   - bin: histogram construction and dynamic-programming bin optimization
//   - ans: table-based asymmetric numeral system encoder/decoder
//   - latent: the closed set of supported number types and their
//     order-preserving unsigned latent representations
//   - bitio: the least-significant-bit-first bit reader/writer the wire
//     format is built on
package numcodec
