package domain

import "context"

// Passage is one retrievable unit of text plus its source metadata.
// A passage is uniquely identified by (Source, ChunkID) within one store load.
type Passage struct {
	Text    string
	Source  string
	Title   string
	ChunkID int
}

// ScoredPassage is a passage paired with its cosine similarity to a query.
type ScoredPassage struct {
	Passage Passage
	Score   float64
}

// Embedder converts text into unit-normalized numeric vectors.
// Implementations may require a preparation phase over the corpus;
// dimensionality is fixed for the lifetime of one instance.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	// EmbedBatch returns one L2-normalized vector per input text, preserving
	// order. A zero-length input yields a zero-length result. If any single
	// text cannot be encoded the whole batch fails.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbedderFactory builds a fresh embedder instance. Corpus-prepared embedders
// carry per-build state, so every rebuild needs its own instance.
type EmbedderFactory func() Embedder

// EmbedOne is EmbedBatch restricted to a single text, used per incoming query.
func EmbedOne(ctx context.Context, e Embedder, text string) ([]float64, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}
