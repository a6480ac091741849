// Command pcobench compares the chunk compression pipeline against
// general-purpose byte compressors on a handful of synthetic numeric
// columns, reporting bits/value for each.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/valyala/gozstd"

	"github.com/arloliu/numcodec/bitio"
	"github.com/arloliu/numcodec/chunk"
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/internal/pool"
)

func main() {
	dataset := flag.String("dataset", "all", "synthetic dataset to run: constant, linear, decimal, int_mult, float_extremes, all")
	level := flag.Int("level", 8, "chunk compression level, 0-12")
	input := flag.String("input", "", "newline-delimited float64 file to benchmark instead of a synthetic dataset")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *input != "" {
		nums, err := readNumericFile(*input)
		if err != nil {
			log.Error("reading input file", "path", *input, "error", err)
			os.Exit(1)
		}
		report(log, "input", nums, *level)
		return
	}

	datasets := map[string][]float64{
		"constant":       constantDataset(2000),
		"linear":         linearDataset(2000),
		"decimal":        decimalDataset(2000),
		"int_mult":       intMultDataset(2000),
		"float_extremes": floatExtremesDataset(),
	}

	if *dataset != "all" {
		nums, ok := datasets[*dataset]
		if !ok {
			log.Error("unknown dataset", "dataset", *dataset)
			os.Exit(1)
		}
		report(log, *dataset, nums, *level)
		return
	}

	for _, name := range []string{"constant", "linear", "decimal", "int_mult", "float_extremes"} {
		report(log, name, datasets[name], *level)
	}
}

func readNumericFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var nums []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing line %q: %w", line, err)
		}
		nums = append(nums, v)
	}
	return nums, scanner.Err()
}

func constantDataset(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 42.0
	}
	return out
}

func linearDataset(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func decimalDataset(n int) []float64 {
	rng := rand.New(rand.NewSource(42))
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round(rng.Float64()*101-1) / 100
	}
	return out
}

func intMultDataset(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i * 1000)
	}
	return out
}

func floatExtremesDataset() []float64 {
	return []float64{math.MaxFloat64, -math.MaxFloat64, math.NaN(), math.Inf(1), math.Inf(-1), math.Copysign(0, -1), 0, 77.7}
}

func report(log *slog.Logger, name string, nums []float64, level int) {
	cfg := chunk.DefaultConfig().WithCompressionLevel(level)

	c, err := chunk.CompressFloat64(nums, cfg)
	if err != nil {
		log.Error("chunk compress failed", "dataset", name, "error", err)
		return
	}

	metaBuf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(metaBuf)
	mw := bitio.NewWriter(metaBuf)
	if err := c.WriteMeta(mw); err != nil {
		log.Error("writing meta", "dataset", name, "error", err)
		return
	}
	mw.Finish()

	pageBuf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(pageBuf)
	pw := bitio.NewWriter(pageBuf)
	for pageIdx := range c.PageSizes() {
		pw.Reset(pageBuf)
		if err := c.WritePage(pageIdx, pw); err != nil {
			log.Error("writing page", "dataset", name, "error", err)
			return
		}
		pw.Finish()
	}

	chunkBytes := metaBuf.Len() + pageBuf.Len()
	rawBytes := len(nums) * 8

	fmt.Printf("=== %s (%d values, mode=%s) ===\n", name, len(nums), c.Meta().Mode.Kind)
	printRow("chunk", chunkBytes, rawBytes)
	printRow(format.CompressionZstd.String(), compressedSize(nums, compressZstd), rawBytes)
	printRow(format.CompressionS2.String(), compressedSize(nums, compressS2), rawBytes)
	printRow(format.CompressionLZ4.String(), compressedSize(nums, compressLZ4), rawBytes)
	printRow("gozstd", compressedSize(nums, compressGozstd), rawBytes)
	fmt.Println()
}

func printRow(label string, compressedBytes, rawBytes int) {
	bitsPerValue := float64(compressedBytes*8) / float64(rawBytes/8)
	fmt.Printf("  %-10s %8d bytes  %6.2f bits/value\n", label, compressedBytes, bitsPerValue)
}

func float64ToBytes(nums []float64) []byte {
	out := make([]byte, len(nums)*8)
	for i, v := range nums {
		bits := math.Float64bits(v)
		for b := 0; b < 8; b++ {
			out[i*8+b] = byte(bits >> (8 * b))
		}
	}
	return out
}

func compressedSize(nums []float64, compress func([]byte) ([]byte, error)) int {
	raw := float64ToBytes(nums)
	out, err := compress(raw)
	if err != nil {
		return -1
	}
	return len(out)
}

func compressZstd(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func compressS2(raw []byte) ([]byte, error) {
	return s2.Encode(nil, raw), nil
}

func compressLZ4(raw []byte) ([]byte, error) {
	out := make([]byte, lz4.CompressBlockBound(len(raw)))
	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(raw, out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

func compressGozstd(raw []byte) ([]byte, error) {
	return gozstd.Compress(nil, raw), nil
}
