package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"

	"medrag/internal/config"
	"medrag/internal/corpus"
	"medrag/internal/domain"
	"medrag/internal/embedding/ollama"
	"medrag/internal/embedding/tfidf"
	"medrag/internal/retriever"
	"medrag/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./medrag.yaml or ~/.config/medrag/config.yaml)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	store := corpus.NewStore(cfg.StoreDir, log)
	retr := retriever.New(store, newEmbedderFactory(cfg.Embedder), log)

	// Model loading and the first embedding pass happen here, observably,
	// not as an import side effect.
	initCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	err = retr.Init(initCtx)
	cancel()
	if err != nil {
		log.Error("retriever init failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WatchStore {
		go watchStore(ctx, cfg.StoreDir, retr, log)
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(retr, log).Router(),
	}
	go func() {
		log.Info("serving", "addr", cfg.Addr, "passages", retr.Size(), "model", cfg.Embedder.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "err", err)
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

// watchStore rebuilds the retriever when corpus files change, debouncing
// bursts of writes from an ingestion run into one rebuild.
func watchStore(ctx context.Context, dir string, retr *retriever.Retriever, log *slog.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("store watch disabled", "err", err)
		return
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		log.Warn("store watch disabled", "dir", dir, "err", err)
		return
	}

	const debounce = 2 * time.Second
	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".jsonl" {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("store watch error", "err", err)
		case <-pending:
			log.Info("corpus changed, rebuilding", "dir", dir)
			if err := retr.Rebuild(ctx); err != nil {
				log.Error("rebuild after corpus change failed", "err", err)
			}
		}
	}
}
