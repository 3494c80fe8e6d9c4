package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Record is one corpus line in the shape the document store reads back.
type Record struct {
	ID          string   `json:"id"`
	PageContent string   `json:"page_content"`
	Metadata    Metadata `json:"metadata"`
}

// Metadata identifies where a chunk came from.
type Metadata struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	ChunkID int    `json:"chunk_id"`
}

// Chunk splits cleaned page text and wraps each chunk in a corpus record
// with sequential chunk ids.
func Chunk(text, source, title string, size, overlap int) []Record {
	chunks := Split(text, size, overlap)
	out := make([]Record, len(chunks))
	for i, c := range chunks {
		out[i] = Record{
			ID:          uuid.NewString(),
			PageContent: c,
			Metadata:    Metadata{Source: source, Title: title, ChunkID: i},
		}
	}
	return out
}

// WriteJSONL writes records to path, one JSON object per line, replacing any
// existing file. The parent directory is created if needed.
func WriteJSONL(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ingest: create store dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ingest: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("ingest: marshal record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("ingest: write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("ingest: flush %s: %w", path, err)
	}
	return nil
}
