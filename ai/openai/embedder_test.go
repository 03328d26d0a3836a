package openai

import (
	"math"
	"testing"

	"github.com/poiesic/docsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEmbeddings(t *testing.T) {
	t.Run("valid batch", func(t *testing.T) {
		vectors := [][]float32{{0.6, 0.8}, {1, 0}}
		require.NoError(t, checkEmbeddings(vectors, 2))
	})

	t.Run("empty result", func(t *testing.T) {
		err := checkEmbeddings(nil, 1)
		assert.ErrorIs(t, err, core.ErrEmbedding)
	})

	t.Run("count mismatch", func(t *testing.T) {
		err := checkEmbeddings([][]float32{{1, 0}}, 2)
		assert.ErrorIs(t, err, core.ErrEmbedding)
	})

	t.Run("empty vector in batch", func(t *testing.T) {
		err := checkEmbeddings([][]float32{{1, 0}, {}}, 2)
		assert.ErrorIs(t, err, core.ErrEmbedding)
	})
}

func TestNormalizeUnit(t *testing.T) {
	got := normalizeUnit([]float32{3, 4})

	var sumSquares float64
	for _, v := range got {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-6)
	assert.InDelta(t, 0.6, got[0], 1e-6)
	assert.InDelta(t, 0.8, got[1], 1e-6)

	// Zero vectors pass through unchanged
	zero := normalizeUnit([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}
