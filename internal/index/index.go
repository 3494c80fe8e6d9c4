// Package index ranks a fixed embedding matrix against query vectors by
// cosine similarity.
//
// Ranking is exact: one matrix-vector product per query, O(N*D) for N rows of
// dimension D. That is intentional for a corpus of curated health topics; if
// the collection grows beyond a few thousand passages an approximate
// nearest-neighbor structure would be needed instead.
package index

import (
	"errors"
	"fmt"
	"sort"

	"medrag/internal/domain"
)

// Hit is one ranked row: its original matrix index and similarity score.
type Hit struct {
	Index int
	Score float64
}

// Index holds an immutable, row-aligned embedding matrix. Row i is the
// embedding of passage i in the collection the matrix was built from.
type Index struct {
	matrix [][]float64
	dim    int
}

// New validates that all rows share one dimensionality and wraps them in an
// Index. The matrix must not be empty; the document store guarantees at least
// one passage, so an empty matrix is a programmer error.
func New(matrix [][]float64) (*Index, error) {
	if len(matrix) == 0 {
		return nil, errors.New("index: empty embedding matrix")
	}
	dim := len(matrix[0])
	if dim == 0 {
		return nil, errors.New("index: zero-dimensional embeddings")
	}
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("index: row %d has %d dimensions, want %d: %w",
				i, len(row), dim, domain.ErrDimensionMismatch)
		}
	}
	return &Index{matrix: matrix, dim: dim}, nil
}

// Len returns the number of indexed rows.
func (ix *Index) Len() int { return len(ix.matrix) }

// Dimension returns the embedding dimensionality of the matrix.
func (ix *Index) Dimension() int { return ix.dim }

// Rank scores every row against the query vector and returns the top
// min(k, N) hits by descending score. Both the rows and the query are
// unit-normalized, so the dot product is the cosine similarity in [-1, 1].
//
// Ties resolve by ascending original index, so output is deterministic.
// k <= 0 yields an empty result; k beyond the row count yields all rows.
func (ix *Index) Rank(query []float64, k int) ([]Hit, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("index: query has %d dimensions, matrix has %d: %w",
			len(query), ix.dim, domain.ErrDimensionMismatch)
	}
	if k <= 0 {
		return nil, nil
	}
	hits := make([]Hit, len(ix.matrix))
	for i, row := range ix.matrix {
		hits[i] = Hit{Index: i, Score: dot(row, query)}
	}
	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
