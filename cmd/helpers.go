package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/legisverde/legisverde/internal/config"
	"github.com/legisverde/legisverde/internal/corpus"
	"github.com/legisverde/legisverde/internal/embeddings"
	"github.com/legisverde/legisverde/internal/llm"
	"github.com/legisverde/legisverde/internal/resolver"
	"github.com/legisverde/legisverde/internal/retriever"
	"github.com/legisverde/legisverde/internal/stats"
	"github.com/legisverde/legisverde/internal/technical"
	"github.com/legisverde/legisverde/internal/textnorm"
	"github.com/legisverde/legisverde/internal/vectordb"
)

// loadConfig loads and validates the config, with a hint toward init
// when it is missing or broken.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("carregando configuração: %w\nExecute `legisverde init` para criar o arquivo", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return cfg, nil
}

// createEmbedder builds the embedding backend from config. Providers
// without native embeddings fall back to OpenAI.
func createEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("a variável OPENAI_API_KEY é obrigatória para embeddings OpenAI")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
	case config.ProviderGoogle:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderGoogle))
		if apiKey == "" {
			return nil, fmt.Errorf("a variável GOOGLE_API_KEY é obrigatória para embeddings Google")
		}
		return embeddings.NewGoogleEmbedder(apiKey, cfg.EmbeddingModel), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 768, ""), nil
	default:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY é obrigatória (embeddings quando o provedor é %s)", provider)
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
	}
}

// app holds the long-lived handles shared by the serving commands.
type app struct {
	cfg      *config.Config
	store    *vectordb.ChromemStore
	registry *stats.Registry
	stats    stats.Provider
	resolver *resolver.Resolver
}

// buildApp wires the full query pipeline from config: store, registry,
// statistics, classifier and resolver.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	embedder, err := createEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("criando embedder: %w", err)
	}

	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("criando provedor LLM: %w", err)
	}

	store := vectordb.NewChromemStore(embedder)
	if err := store.Load(ctx, cfg.DataDir); err != nil {
		// An empty index is a valid state before the first `index` run.
		log.Printf("aviso: índice vetorial não carregado de %s: %v", cfg.DataDir, err)
		log.Printf("Execute `legisverde index` para indexar o corpus.")
	}

	a := &app{cfg: cfg, store: store}

	registry, err := stats.Open(filepath.Join(cfg.DataDir, "registry.db"))
	if err != nil {
		log.Printf("aviso: registro de instrumentos indisponível: %v", err)
	} else {
		a.registry = registry
	}

	sampler := stats.NewSampler(store, map[string]corpus.SourceKind{
		cfg.Namespaces.Statutes:  corpus.SourceStatute,
		cfg.Namespaces.Standards: corpus.SourceStandard,
		cfg.Namespaces.Council:   corpus.SourceCouncil,
	})
	if a.registry != nil {
		a.stats = stats.WithFallback(a.registry, sampler)
	} else {
		a.stats = sampler
	}

	search := retriever.New(store, retriever.Config{
		Statutes:      cfg.Namespaces.Statutes,
		Standards:     cfg.Namespaces.Standards,
		Council:       cfg.Namespaces.Council,
		SecondaryK:    cfg.Retrieval.SecondaryK,
		SearchTimeout: time.Duration(cfg.Retrieval.SearchTimeoutSeconds) * time.Second,
	})

	detector := technical.New(technical.Keywords{
		Greetings:    cfg.Keywords.Greetings,
		Domain:       cfg.Keywords.Domain,
		Technical:    cfg.Keywords.Technical,
		Count:        cfg.Keywords.TechnicalCount,
		Database:     cfg.Keywords.TechnicalDatabase,
		Architecture: cfg.Keywords.TechnicalArchitecture,
	}, a.stats)

	a.resolver = resolver.New(
		search,
		provider,
		detector,
		corpus.NewRevocationFilter(cfg.Keywords.RevocationMarkers),
		textnorm.New(cfg.Keywords.Stopwords, cfg.Keywords.LegalTerms),
		resolver.Config{
			Model:            cfg.Model,
			GeneralK:         cfg.Retrieval.GeneralK,
			LawNumberK:       cfg.Retrieval.LawNumberK,
			MaxInflight:      cfg.Retrieval.MaxInflight,
			SynthesisTimeout: time.Duration(cfg.Retrieval.SynthesisTimeoutSeconds) * time.Second,
		},
	)
	return a, nil
}

// Close releases the app's handles.
func (a *app) Close() {
	if a.registry != nil {
		a.registry.Close()
	}
}
