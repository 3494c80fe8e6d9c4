package domain

import (
	"errors"
	"fmt"
)

// ErrEncoding reports that an embedder could not produce a vector for the
// given text. The core never retries or substitutes a default vector, since a
// wrong vector would silently corrupt ranking.
var ErrEncoding = errors.New("embedding failed")

// ErrEmptyQuery is the encoding failure for a query that is empty after
// trimming.
var ErrEmptyQuery = fmt.Errorf("%w: empty query", ErrEncoding)

// ErrDimensionMismatch reports a query vector whose dimensionality disagrees
// with the indexed matrix, e.g. after an embedding model swap without a
// rebuild.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")
