// Package server exposes the question-answering API over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"medrag/internal/answer"
	"medrag/internal/conditions"
	"medrag/internal/domain"
	"medrag/internal/guardrails"
	"medrag/internal/retriever"
	"medrag/internal/tts"
)

// maxSources caps how many source records an answer carries.
const maxSources = 4

// Retriever is the part of the retrieval core the handlers need.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredPassage, error)
	Rebuild(ctx context.Context) error
	Size() int
}

// Server wires the retrieval core to HTTP handlers. It owns no state beyond
// the injected collaborators.
type Server struct {
	retr Retriever
	log  *slog.Logger
}

// New creates a server around the given retriever.
func New(retr Retriever, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{retr: retr, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", s.health)
	r.POST("/ask", s.ask)
	r.POST("/rebuild", s.rebuild)
	return r
}

// AskRequest is the /ask request body.
type AskRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
	Voice bool   `json:"voice"`
}

// Safety carries the disclaimer and the emergency flag for a question.
type Safety struct {
	Disclaimer string `json:"disclaimer"`
	Emergency  bool   `json:"emergency"`
}

// AskResponse is the /ask response body.
type AskResponse struct {
	Answer         string            `json:"answer"`
	Sources        []answer.Citation `json:"sources"`
	Safety         Safety            `json:"safety"`
	ConditionLinks []conditions.Link `json:"condition_links,omitempty"`
	AudioB64       string            `json:"audio_b64,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.TopK <= 0 {
		req.TopK = retriever.DefaultK
	}

	scored, err := s.retr.Retrieve(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query must not be empty"})
			return
		}
		s.log.Error("retrieve failed", "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	passages := answer.Passages(scored)
	resp := AskResponse{
		Answer:  answer.Synthesize(req.Query, passages),
		Sources: answer.Citations(passages, maxSources),
		Safety: Safety{
			Disclaimer: guardrails.Disclaimer,
			Emergency:  guardrails.EmergencyFlag(req.Query),
		},
		ConditionLinks: conditions.Match(req.Query),
	}
	if req.Voice {
		resp.AudioB64 = tts.Dummy(resp.Answer)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) rebuild(c *gin.Context) {
	if err := s.retr.Rebuild(c.Request.Context()); err != nil {
		s.log.Error("rebuild failed", "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "passages": s.retr.Size()})
}
