package embeddings

import (
	"context"
	"fmt"
	"net/http"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// OllamaEmbedder generates embeddings using a local Ollama instance.
type OllamaEmbedder struct {
	baseURL    string
	model      string
	dimensions int
	httpClient *http.Client
}

// NewOllamaEmbedder creates an Ollama embedder. dimensions is the
// output size for the model (768 for nomic-embed-text). baseURL
// defaults to http://localhost:11434 when empty.
func NewOllamaEmbedder(model string, dimensions int, baseURL string) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	return &OllamaEmbedder{
		baseURL:    baseURL,
		model:      model,
		dimensions: dimensions,
		httpClient: &http.Client{},
	}
}

func (e *OllamaEmbedder) Name() string    { return "ollama/" + e.model }
func (e *OllamaEmbedder) Dimensions() int { return e.dimensions }

type ollamaEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, 0, len(texts))
	for _, text := range texts {
		var resp ollamaEmbedResponse
		err := postJSON(ctx, e.httpClient, e.baseURL+"/api/embed", ollamaEmbedRequest{
			Model: e.model,
			Input: text,
		}, &resp)
		if err != nil {
			return nil, fmt.Errorf("ollama embed: %w", err)
		}
		if len(resp.Embeddings) == 0 {
			return nil, fmt.Errorf("ollama returned no embeddings")
		}
		results = append(results, resp.Embeddings[0])
	}
	return results, nil
}
