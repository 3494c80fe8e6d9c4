package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrag/internal/domain"
)

func TestNewRejectsEmptyMatrix(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNewRejectsRaggedMatrix(t *testing.T) {
	_, err := New([][]float64{{1, 0}, {1, 0, 0}})
	require.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestRankOrdersByDescendingScore(t *testing.T) {
	ix, err := New([][]float64{
		{0, 1},
		{1, 0},
		{0.6, 0.8},
	})
	require.NoError(t, err)

	hits, err := ix.Rank([]float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{1, 2, 0}, []int{hits[0].Index, hits[1].Index, hits[2].Index})
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestRankTieBreaksByOriginalIndex(t *testing.T) {
	// Rows 0 and 2 score identically against the query.
	ix, err := New([][]float64{
		{0, 1},
		{1, 0},
		{0, 1},
	})
	require.NoError(t, err)

	hits, err := ix.Rank([]float64{0, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, hits[0].Index)
	assert.Equal(t, 2, hits[1].Index)
	assert.Equal(t, 1, hits[2].Index)
}

func TestRankKClamping(t *testing.T) {
	ix, err := New([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits, err := ix.Rank([]float64{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = ix.Rank([]float64{1, 0}, -4)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = ix.Rank([]float64{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestRankRejectsDimensionMismatch(t *testing.T) {
	ix, err := New([][]float64{{1, 0}})
	require.NoError(t, err)

	_, err = ix.Rank([]float64{1, 0, 0}, 1)
	require.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestRankIsDeterministic(t *testing.T) {
	ix, err := New([][]float64{{0.6, 0.8}, {0.8, 0.6}, {1, 0}, {0, 1}})
	require.NoError(t, err)

	first, err := ix.Rank([]float64{0.7, 0.7}, 4)
	require.NoError(t, err)
	second, err := ix.Rank([]float64{0.7, 0.7}, 4)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
