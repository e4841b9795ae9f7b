package embeddings

import (
	"context"
	"fmt"
	"net/http"
)

const googleEmbedEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:embedContent?key=%s"

// GoogleEmbedder generates embeddings using Google's Generative AI API.
type GoogleEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	httpClient *http.Client
}

// NewGoogleEmbedder creates a Google embedder. The API embeds one text
// per request.
func NewGoogleEmbedder(apiKey, model string) *GoogleEmbedder {
	dims := 3072
	if model == "text-embedding-004" {
		dims = 768
	}
	return &GoogleEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: dims,
		httpClient: &http.Client{},
	}
}

func (e *GoogleEmbedder) Name() string    { return e.model }
func (e *GoogleEmbedder) Dimensions() int { return e.dimensions }

type googleEmbedRequest struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

type googleEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (e *GoogleEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	url := fmt.Sprintf(googleEmbedEndpoint, e.model, e.apiKey)
	results := make([][]float32, 0, len(texts))

	for _, text := range texts {
		var req googleEmbedRequest
		req.Content.Parts = append(req.Content.Parts, struct {
			Text string `json:"text"`
		}{Text: text})

		var resp googleEmbedResponse
		if err := postJSON(ctx, e.httpClient, url, req, &resp); err != nil {
			return nil, fmt.Errorf("google embed: %w", err)
		}
		if len(resp.Embedding.Values) == 0 {
			return nil, fmt.Errorf("google returned empty embedding")
		}
		results = append(results, resp.Embedding.Values)
	}

	return results, nil
}
