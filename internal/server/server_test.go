package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrag/internal/domain"
)

// stubRetriever implements Retriever for handler tests.
type stubRetriever struct {
	scored      []domain.ScoredPassage
	retrieveErr error
	rebuildErr  error
	rebuilt     bool
	gotQuery    string
	gotK        int
}

func (s *stubRetriever) Retrieve(_ context.Context, query string, k int) ([]domain.ScoredPassage, error) {
	s.gotQuery, s.gotK = query, k
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if s.retrieveErr != nil {
		return nil, s.retrieveErr
	}
	if k < len(s.scored) {
		return s.scored[:k], nil
	}
	return s.scored, nil
}

func (s *stubRetriever) Rebuild(context.Context) error {
	s.rebuilt = true
	return s.rebuildErr
}

func (s *stubRetriever) Size() int { return len(s.scored) }

func fluStub() *stubRetriever {
	return &stubRetriever{scored: []domain.ScoredPassage{{
		Passage: domain.Passage{
			Text:    "Drink fluids and rest for flu symptoms.",
			Source:  "https://medlineplus.gov/flu.html",
			Title:   "Flu",
			ChunkID: 0,
		},
		Score: 0.92,
	}}}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(t, New(fluStub(), nil), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAskHappyPath(t *testing.T) {
	stub := fluStub()
	w := doJSON(t, New(stub, nil), http.MethodPost, "/ask", AskRequest{Query: "flu fever"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "flu fever", stub.gotQuery)
	assert.Equal(t, 6, stub.gotK) // default top_k
	assert.Contains(t, resp.Answer, "[Flu](https://medlineplus.gov/flu.html)")
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "https://medlineplus.gov/flu.html", resp.Sources[0].URL)
	assert.False(t, resp.Safety.Emergency)
	assert.NotEmpty(t, resp.Safety.Disclaimer)
	assert.NotEmpty(t, resp.ConditionLinks)
	assert.Empty(t, resp.AudioB64)
}

func TestAskEmergencyFlagged(t *testing.T) {
	w := doJSON(t, New(fluStub(), nil), http.MethodPost, "/ask",
		AskRequest{Query: "flu and severe chest pain"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Safety.Emergency)
}

func TestAskVoiceReturnsAudio(t *testing.T) {
	w := doJSON(t, New(fluStub(), nil), http.MethodPost, "/ask",
		AskRequest{Query: "flu", Voice: true})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AudioB64)
}

func TestAskMissingQuery(t *testing.T) {
	w := doJSON(t, New(fluStub(), nil), http.MethodPost, "/ask", map[string]any{"top_k": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskBlankQuery(t *testing.T) {
	w := doJSON(t, New(fluStub(), nil), http.MethodPost, "/ask", AskRequest{Query: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskRetrieveErrorSurfaces(t *testing.T) {
	stub := fluStub()
	stub.retrieveErr = errors.New("model unavailable")
	w := doJSON(t, New(stub, nil), http.MethodPost, "/ask", AskRequest{Query: "flu"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "model unavailable")
}

func TestAskHonorsTopK(t *testing.T) {
	stub := fluStub()
	doJSON(t, New(stub, nil), http.MethodPost, "/ask", AskRequest{Query: "flu", TopK: 2})
	assert.Equal(t, 2, stub.gotK)
}

func TestRebuild(t *testing.T) {
	stub := fluStub()
	w := doJSON(t, New(stub, nil), http.MethodPost, "/rebuild", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.rebuilt)
	assert.Contains(t, w.Body.String(), `"passages":1`)
}

func TestRebuildErrorSurfaces(t *testing.T) {
	stub := fluStub()
	stub.rebuildErr = errors.New("corpus unreadable")
	w := doJSON(t, New(stub, nil), http.MethodPost, "/rebuild", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
