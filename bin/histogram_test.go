package bin

import (
	"math/rand"
	"testing"

	"github.com/arloliu/numcodec/latent"
	"github.com/stretchr/testify/require"
)

func TestCCount(t *testing.T) {
	n := uint64(41)
	nBins := uint64(4)
	require.Equal(t, uint64(11), cCount(0, n, nBins))
	require.Equal(t, uint64(21), cCount(1, n, nBins))
	require.Equal(t, uint64(31), cCount(2, n, nBins))
	require.Equal(t, uint64(41), cCount(3, n, nBins))
}

func TestHistogram_Empty(t *testing.T) {
	require.Nil(t, histogram([]uint32{}, 2))
}

func TestHistogram_SingleValue(t *testing.T) {
	bins := histogram([]uint32{5}, 2)
	require.Equal(t, []rawBin[uint32]{{Count: 1, Lower: 5, Upper: 5}}, bins)
}

func TestHistogram_Sequential(t *testing.T) {
	latents := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	bins := histogram(latents, 2)

	require.Len(t, bins, 4)
	total := uint64(0)
	for _, b := range bins {
		total += b.Count
		require.LessOrEqual(t, b.Lower, b.Upper)
	}
	require.Equal(t, uint64(9), total)
	require.Equal(t, []uint64{3, 2, 2, 2}, countsOf(bins))
}

func TestHistogram_ConstantRun(t *testing.T) {
	latents := make([]uint32, 100)
	for i := range latents {
		latents[i] = 8
	}
	bins := histogram(latents, 2)
	require.Equal(t, []rawBin[uint32]{{Count: 100, Lower: 8, Upper: 8}}, bins)
}

func TestHistogram_MixedConstantRuns(t *testing.T) {
	latents := make([]uint32, 100)
	for i := range latents {
		latents[i] = 5
	}
	latents[0] = 3
	latents[1] = 7
	latents[2] = 7

	bins := histogram(latents, 2)

	total := uint64(0)
	for _, b := range bins {
		total += b.Count
	}
	require.Equal(t, uint64(100), total)

	seen := map[uint32]uint64{}
	for _, b := range bins {
		require.Equal(t, b.Lower, b.Upper, "constant-run bins must have Lower == Upper")
		seen[b.Lower] += b.Count
	}
	require.Equal(t, uint64(1), seen[3])
	require.Equal(t, uint64(2), seen[7])
	require.Equal(t, uint64(97), seen[5])
}

func TestHistogram_QuicksortShuffled(t *testing.T) {
	for seed := int64(0); seed < 16; seed++ {
		latents := make([]uint32, 100)
		for i := range latents {
			latents[i] = uint32(i)
		}
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(latents), func(i, j int) { latents[i], latents[j] = latents[j], latents[i] })

		bins := histogram(latents, 2)
		require.Len(t, bins, 4)
		require.Equal(t, []uint64{25, 25, 25, 25}, countsOf(bins))
		require.Equal(t, uint32(0), bins[0].Lower)
		require.Equal(t, uint32(24), bins[0].Upper)
		require.Equal(t, uint32(25), bins[1].Lower)
		require.Equal(t, uint32(49), bins[1].Upper)
		require.Equal(t, uint32(50), bins[2].Lower)
		require.Equal(t, uint32(74), bins[2].Upper)
		require.Equal(t, uint32(75), bins[3].Lower)
		require.Equal(t, uint32(99), bins[3].Upper)
	}
}

func TestSortLatents_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 10; trial++ {
		n := rng.Intn(500)
		xs := make([]uint64, n)
		for i := range xs {
			xs[i] = uint64(rng.Intn(1000))
		}
		sortLatents(xs)
		for i := 1; i < len(xs); i++ {
			require.LessOrEqual(t, xs[i-1], xs[i])
		}
	}
}

func countsOf[L latent.Latent](bins []rawBin[L]) []uint64 {
	out := make([]uint64, len(bins))
	for i, b := range bins {
		out[i] = b.Count
	}
	return out
}
