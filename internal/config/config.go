// Package config loads the application configuration from YAML with
// environment overrides for the options operators most often change.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OllamaConfig contains connection details for a remote embedding model.
type OllamaConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects the embedding model. Model "tfidf" is the local
// deterministic backend; any other value names a model served by the
// configured Ollama endpoint. Changing the model changes vector
// dimensionality and requires a full rebuild.
type EmbedderConfig struct {
	Model  string        `yaml:"model"`
	Ollama *OllamaConfig `yaml:"ollama,omitempty"`
}

// IngestConfig configures corpus ingestion chunking and fetching.
type IngestConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TimeoutSecs  int `yaml:"timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Addr       string         `yaml:"addr"`
	StoreDir   string         `yaml:"store_dir"`
	WatchStore bool           `yaml:"watch_store"`
	Embedder   EmbedderConfig `yaml:"embedder"`
	Ingest     IngestConfig   `yaml:"ingest"`
}

// Load reads a config from path. A missing file yields defaults. Environment
// variables MEDRAG_ADDR, STORE_DIR, and EMBEDDINGS_MODEL override file values.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadDefault tries ./medrag.yaml first, then ~/.config/medrag/config.yaml.
// If neither exists, defaults are written to the user path and returned.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "medrag.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "medrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Addr:       ":8000",
		StoreDir:   "./store",
		WatchStore: true,
		Embedder:   EmbedderConfig{Model: "tfidf"},
		Ingest:     IngestConfig{ChunkSize: 800, ChunkOverlap: 120, TimeoutSecs: 30},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = "./store"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "tfidf"
	}
	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = 800
	}
	if cfg.Ingest.ChunkOverlap == 0 {
		cfg.Ingest.ChunkOverlap = 120
	}
	if cfg.Ingest.TimeoutSecs == 0 {
		cfg.Ingest.TimeoutSecs = 30
	}
	if cfg.Embedder.Model != "tfidf" && cfg.Embedder.Ollama == nil {
		cfg.Embedder.Ollama = &OllamaConfig{}
	}
	if cfg.Embedder.Ollama != nil {
		if cfg.Embedder.Ollama.BaseURL == "" {
			cfg.Embedder.Ollama.BaseURL = "http://localhost:11434"
		}
		if cfg.Embedder.Ollama.TimeoutSecs == 0 {
			cfg.Embedder.Ollama.TimeoutSecs = 30
		}
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("MEDRAG_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STORE_DIR"); v != "" {
		cfg.StoreDir = v
	}
	if v := os.Getenv("EMBEDDINGS_MODEL"); v != "" {
		cfg.Embedder.Model = v
		if v != "tfidf" && cfg.Embedder.Ollama == nil {
			cfg.Embedder.Ollama = &OllamaConfig{BaseURL: "http://localhost:11434", TimeoutSecs: 30}
		}
	}
}
