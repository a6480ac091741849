package ans

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantizeWeightsTo(t *testing.T) {
	require.Equal(t, []uint32{1}, QuantizeWeightsTo([]uint32{777}, 777, 0))
	require.Equal(t, []uint32{1, 1}, QuantizeWeightsTo([]uint32{777, 1}, 778, 1))
	require.Equal(t, []uint32{3, 1}, QuantizeWeightsTo([]uint32{777, 1}, 778, 2))
	require.Equal(t, []uint32{1, 1, 3, 2, 1}, QuantizeWeightsTo([]uint32{2, 3, 6, 5, 1}, 17, 3))
}

func TestQuantizeWeights(t *testing.T) {
	sizeLog, weights := QuantizeWeights([]uint32{77, 100}, 177, 4)
	require.Equal(t, uint32(4), sizeLog)
	require.Equal(t, []uint32{7, 9}, weights)

	sizeLog, weights = QuantizeWeights([]uint32{77, 77}, 154, 4)
	require.Equal(t, uint32(1), sizeLog)
	require.Equal(t, []uint32{1, 1}, weights)
}
