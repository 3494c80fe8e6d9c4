// Package corpus owns the authoritative in-memory passage collection, loaded
// from line-delimited JSON files produced by the ingestion tool.
package corpus

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"medrag/internal/domain"
)

// FallbackText is the single synthetic passage returned when no valid corpus
// exists, so downstream components never operate on a zero-row matrix.
const FallbackText = "No medical corpus found. Run medrag-ingest to populate the store directory with *.jsonl files."

// Store loads passages from a directory of JSONL corpus files.
type Store struct {
	dir string
	log *slog.Logger
}

// NewStore creates a store reading from dir.
func NewStore(dir string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the configured store directory.
func (s *Store) Dir() string { return s.dir }

// record is the on-disk line shape:
// {"page_content": "...", "metadata": {"source": "...", "title": "...", "chunk_id": 0}}
type record struct {
	PageContent string `json:"page_content"`
	Metadata    struct {
		Source  string `json:"source"`
		Title   string `json:"title"`
		ChunkID int    `json:"chunk_id"`
	} `json:"metadata"`
}

// Load reads every *.jsonl file in the store directory in sorted filename
// order and concatenates their passages. Malformed lines are skipped, missing
// files and directories are treated as empty, and duplicate (source, chunk_id)
// pairs keep the first occurrence. The result is never empty: with no valid
// passages it contains exactly the setup-required fallback.
func (s *Store) Load() []domain.Passage {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.jsonl"))
	if err != nil {
		// Glob only fails on a bad pattern; treat as empty.
		paths = nil
	}
	sort.Strings(paths)

	var passages []domain.Passage
	seen := make(map[string]struct{})
	for _, p := range paths {
		passages = s.loadFile(p, passages, seen)
	}
	if len(passages) == 0 {
		s.log.Warn("no valid passages found, using setup fallback", "dir", s.dir)
		return []domain.Passage{Fallback()}
	}
	s.log.Info("corpus loaded", "files", len(paths), "passages", len(passages))
	return passages
}

func (s *Store) loadFile(path string, passages []domain.Passage, seen map[string]struct{}) []domain.Passage {
	f, err := os.Open(path)
	if err != nil {
		s.log.Warn("skipping unreadable corpus file", "path", path, "err", err)
		return passages
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			s.log.Warn("skipping malformed corpus line", "path", path, "line", line, "err", err)
			continue
		}
		if strings.TrimSpace(rec.PageContent) == "" {
			s.log.Warn("skipping empty corpus line", "path", path, "line", line)
			continue
		}
		key := rec.Metadata.Source + "#" + strconv.Itoa(rec.Metadata.ChunkID)
		if _, dup := seen[key]; dup {
			s.log.Warn("skipping duplicate passage", "path", path, "line", line, "key", key)
			continue
		}
		seen[key] = struct{}{}
		passages = append(passages, domain.Passage{
			Text:    rec.PageContent,
			Source:  rec.Metadata.Source,
			Title:   rec.Metadata.Title,
			ChunkID: rec.Metadata.ChunkID,
		})
	}
	if err := sc.Err(); err != nil {
		s.log.Warn("corpus file read aborted", "path", path, "err", err)
	}
	return passages
}

// Fallback is the sentinel passage substituted for an empty corpus.
func Fallback() domain.Passage {
	return domain.Passage{
		Text:    FallbackText,
		Source:  "system",
		Title:   "Setup Required",
		ChunkID: 0,
	}
}
