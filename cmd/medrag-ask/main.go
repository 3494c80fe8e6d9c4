package main

import (
	"context"
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"medrag/internal/config"
	"medrag/internal/corpus"
	"medrag/internal/domain"
	"medrag/internal/embedding/ollama"
	"medrag/internal/embedding/tfidf"
	"medrag/internal/retriever"
	"medrag/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var topK int
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.IntVar(&topK, "k", retriever.DefaultK, "Passages to retrieve per question")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store := corpus.NewStore(cfg.StoreDir, nil)
	retr := retriever.New(store, newEmbedderFactory(cfg.Embedder), nil)
	if err := retr.Init(context.Background()); err != nil {
		log.Fatalf("retriever init failed: %v", err)
	}

	m := tui.New(retr, topK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func newEmbedderFactory(cfg config.EmbedderConfig) domain.EmbedderFactory {
	if cfg.Model == "tfidf" || cfg.Model == "" {
		return func() domain.Embedder { return tfidf.New() }
	}
	oc := cfg.Ollama
	if oc == nil {
		oc = &config.OllamaConfig{}
	}
	return func() domain.Embedder {
		return ollama.New(ollama.Config{
			BaseURL: oc.BaseURL,
			Model:   cfg.Model,
			Timeout: time.Duration(oc.TimeoutSecs) * time.Second,
		})
	}
}
