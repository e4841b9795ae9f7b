package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const googleGenerateEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GoogleProvider implements Provider using the Gemini generateContent API.
type GoogleProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGoogleProvider creates a new Google provider.
func NewGoogleProvider(apiKey, model string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
	}
}

func (p *GoogleProvider) Name() string { return "google" }

type googlePart struct {
	Text string `json:"text"`
}

type googleContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []googlePart `json:"parts"`
}

type googleGenerateRequest struct {
	SystemInstruction *googleContent  `json:"systemInstruction,omitempty"`
	Contents          []googleContent `json:"contents"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature,omitempty"`
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type googleGenerateResponse struct {
	Candidates []struct {
		Content      googleContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

func (p *GoogleProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	var gReq googleGenerateRequest
	for _, msg := range req.Messages {
		if msg.Role == RoleSystem {
			gReq.SystemInstruction = &googleContent{Parts: []googlePart{{Text: msg.Content}}}
			continue
		}
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		gReq.Contents = append(gReq.Contents, googleContent{
			Role:  role,
			Parts: []googlePart{{Text: msg.Content}},
		})
	}
	gReq.GenerationConfig.Temperature = req.Temperature
	gReq.GenerationConfig.MaxOutputTokens = req.MaxTokens

	body, err := json.Marshal(gReq)
	if err != nil {
		return nil, fmt.Errorf("marshal google request: %w", err)
	}

	url := fmt.Sprintf(googleGenerateEndpoint, model, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create google request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read google response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var gResp googleGenerateResponse
	if err := json.Unmarshal(respBody, &gResp); err != nil {
		return nil, fmt.Errorf("unmarshal google response: %w", err)
	}
	if len(gResp.Candidates) == 0 {
		return nil, fmt.Errorf("google returned no candidates")
	}

	var content string
	for _, part := range gResp.Candidates[0].Content.Parts {
		content += part.Text
	}

	return &CompletionResponse{
		Content:      content,
		InputTokens:  gResp.UsageMetadata.PromptTokenCount,
		OutputTokens: gResp.UsageMetadata.CandidatesTokenCount,
		Model:        model,
		FinishReason: gResp.Candidates[0].FinishReason,
	}, nil
}
