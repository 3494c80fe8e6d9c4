// Package retriever orchestrates the document store, embedder, and
// similarity index into a single retrieve operation with atomic rebuilds.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"medrag/internal/corpus"
	"medrag/internal/domain"
	"medrag/internal/index"
)

// DefaultK is the number of passages returned when the caller does not ask
// for a specific count.
const DefaultK = 6

// ErrNotInitialized is returned by Retrieve before the first successful
// Init or Rebuild.
var ErrNotInitialized = errors.New("retriever: not initialized")

// snapshot is one consistent (collection, embedder, index) triple. Readers
// take the whole triple at once, so a concurrent rebuild can never pair a
// stale collection with a fresh matrix.
type snapshot struct {
	passages []domain.Passage
	embedder domain.Embedder
	index    *index.Index
}

// Retriever answers retrieve(query, k) over the current corpus snapshot.
// It is constructed explicitly and passed to the serving layer by reference;
// there is no package-level instance.
type Retriever struct {
	store       *corpus.Store
	newEmbedder domain.EmbedderFactory
	log         *slog.Logger

	rebuildMu sync.Mutex // serializes rebuilds, readers never take it
	snap      atomic.Pointer[snapshot]
}

// New creates an uninitialized retriever. Call Init before Retrieve.
func New(store *corpus.Store, factory domain.EmbedderFactory, log *slog.Logger) *Retriever {
	if log == nil {
		log = slog.Default()
	}
	return &Retriever{store: store, newEmbedder: factory, log: log}
}

// Init performs the first corpus load and embedding pass. Failures here are
// startup errors for the caller to surface; load-time corpus anomalies are
// absorbed by the store and never fail Init.
func (r *Retriever) Init(ctx context.Context) error {
	return r.Rebuild(ctx)
}

// Rebuild discards the current collection and reconstructs it wholesale:
// reload passages, prepare a fresh embedder, recompute the matrix, then
// publish everything with a single pointer swap. In-flight Retrieve calls
// keep their previous snapshot; they never observe a partial state.
func (r *Retriever) Rebuild(ctx context.Context) error {
	r.rebuildMu.Lock()
	defer r.rebuildMu.Unlock()

	passages := r.store.Load()
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	emb := r.newEmbedder()
	if err := emb.Prepare(texts); err != nil {
		return fmt.Errorf("retriever: prepare embedder: %w", err)
	}
	matrix, err := emb.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("retriever: embed corpus: %w", err)
	}
	ix, err := index.New(matrix)
	if err != nil {
		return fmt.Errorf("retriever: build index: %w", err)
	}

	r.snap.Store(&snapshot{passages: passages, embedder: emb, index: ix})
	r.log.Info("retriever rebuilt",
		"passages", len(passages), "dimensions", ix.Dimension(), "embedder", emb.Name())
	return nil
}

// Retrieve embeds the query, ranks it against the current snapshot, and
// returns the top min(k, N) passages by descending similarity. k <= 0 yields
// an empty result. A query that is empty after trimming fails with
// ErrEmptyQuery. The collection is never mutated.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredPassage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	snap := r.snap.Load()
	if snap == nil {
		return nil, ErrNotInitialized
	}
	vec, err := domain.EmbedOne(ctx, snap.embedder, query)
	if err != nil {
		return nil, fmt.Errorf("retriever: embed query: %w", err)
	}
	hits, err := snap.index.Rank(vec, k)
	if err != nil {
		return nil, fmt.Errorf("retriever: rank: %w", err)
	}
	out := make([]domain.ScoredPassage, len(hits))
	for i, h := range hits {
		out[i] = domain.ScoredPassage{Passage: snap.passages[h.Index], Score: h.Score}
	}
	return out, nil
}

// Size returns the number of passages in the current snapshot, zero before
// initialization.
func (r *Retriever) Size() int {
	snap := r.snap.Load()
	if snap == nil {
		return 0
	}
	return len(snap.passages)
}
