package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"medrag/internal/config"
	"medrag/internal/ingest"
)

type titleFunc func(url string) string

func main() {
	_ = godotenv.Load()

	var cfgPath, source string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&source, "source", "all", "Source to ingest: medlineplus, cdc, or all")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		color.Red("failed to load config: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	fetcher := ingest.NewFetcher(time.Duration(cfg.Ingest.TimeoutSecs) * time.Second)

	ok := true
	if source == "medlineplus" || source == "all" {
		if err := run(ctx, fetcher, cfg, "medlineplus.jsonl", ingest.MedlinePlusTopics, ingest.MedlinePlusTitle); err != nil {
			color.Red("MedlinePlus ingest failed: %v", err)
			ok = false
		}
	}
	if source == "cdc" || source == "all" {
		if err := run(ctx, fetcher, cfg, "cdc.jsonl", ingest.CDCPages, ingest.CDCTitle); err != nil {
			color.Red("CDC ingest failed: %v", err)
			ok = false
		}
	}
	if source != "medlineplus" && source != "cdc" && source != "all" {
		color.Red("unknown source %q (want medlineplus, cdc, or all)", source)
		ok = false
	}
	if !ok {
		os.Exit(1)
	}
}

func run(ctx context.Context, fetcher *ingest.Fetcher, cfg *config.AppConfig, filename string, urls []string, title titleFunc) error {
	var records []ingest.Record
	for _, url := range urls {
		fmt.Printf("fetching %s\n", url)
		page, err := fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		text := ingest.Clean(page)
		chunks := ingest.Chunk(text, url, title(url), cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
		records = append(records, chunks...)
	}
	path := filepath.Join(cfg.StoreDir, filename)
	if err := ingest.WriteJSONL(path, records); err != nil {
		return err
	}
	color.Green("wrote %s (%d chunks)", path, len(records))
	return nil
}
