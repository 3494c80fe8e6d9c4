package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanStripsBoilerplate(t *testing.T) {
	page := `<html><head><style>body { color: red }</style>
<script>alert("x")</script></head>
<body><nav>Home | About</nav>
<h1>Flu</h1>
<p>Rest &amp; drink fluids.</p>
<footer>Copyright</footer></body></html>`

	got := Clean(page)
	assert.Contains(t, got, "Flu")
	assert.Contains(t, got, "Rest & drink fluids.")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color: red")
	assert.NotContains(t, got, "Home | About")
	assert.NotContains(t, got, "Copyright")
	assert.NotContains(t, got, "<")
}

func TestCleanCollapsesBlankLines(t *testing.T) {
	got := Clean("<p>a</p>\n\n\n\n<p>b</p>")
	assert.NotContains(t, got, "\n\n")
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	got := Split("short text", 800, 120)
	require.Len(t, got, 1)
	assert.Equal(t, "short text", got[0])
}

func TestSplitEmptyText(t *testing.T) {
	assert.Nil(t, Split("   ", 800, 120))
}

func TestSplitRespectsSizeAndCoversText(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("The flu is a contagious respiratory illness. ")
	}
	text := strings.TrimSpace(b.String())

	chunks := Split(text, 200, 40)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 200+40)
		assert.NotEmpty(t, c)
	}
	// First and last words of the source survive chunking.
	assert.True(t, strings.HasPrefix(chunks[0], "The flu"))
	assert.Contains(t, chunks[len(chunks)-1], "illness.")
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	text := strings.Repeat("aaaa ", 30) + "\n\n" + strings.Repeat("bbbb ", 30)
	chunks := Split(text, 160, 0)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.NotContains(t, chunks[0], "bbbb")
}

func TestChunkAssignsSequentialIDs(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("Drink fluids and rest. ", 80))
	recs := Chunk(text, "https://medlineplus.gov/flu.html", "Flu", 200, 40)
	require.Greater(t, len(recs), 1)
	for i, r := range recs {
		assert.Equal(t, i, r.Metadata.ChunkID)
		assert.Equal(t, "Flu", r.Metadata.Title)
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.PageContent)
	}
}

func TestWriteJSONLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store", "medlineplus.jsonl")
	recs := []Record{
		{ID: "1", PageContent: "a", Metadata: Metadata{Source: "s", Title: "T", ChunkID: 0}},
		{ID: "2", PageContent: "b", Metadata: Metadata{Source: "s", Title: "T", ChunkID: 1}},
	}
	require.NoError(t, WriteJSONL(path, recs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"page_content":"a"`)
	assert.Contains(t, lines[1], `"chunk_id":1`)
}

func TestFetcherChecksStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := NewFetcher(0)
	body, err := f.Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Contains(t, body, "ok")

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
}

func TestPageTitles(t *testing.T) {
	assert.Equal(t, "Chestpain", MedlinePlusTitle("https://medlineplus.gov/chestpain.html"))
	assert.Equal(t, "Heart Attack", MedlinePlusTitle("https://medlineplus.gov/heart-attack.html"))
	assert.Equal(t, "Symptoms", CDCTitle("https://www.cdc.gov/flu/symptoms/index.html"))
	assert.Equal(t, "Heartdisease", CDCTitle("https://www.cdc.gov/heartdisease/about.htm"))
}
