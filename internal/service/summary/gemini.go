package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultBaseURL is the public Generative Language API endpoint.
const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiProvider generates text using the Gemini generateContent API.
type GeminiProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiProvider creates a provider that calls the Gemini REST API.
// Model should be a generation model like "gemini-1.5-flash-latest".
// baseURL overrides the public endpoint; empty selects the default.
func NewGeminiProvider(apiKey, model, baseURL string, timeout time.Duration) *GeminiProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *geminiError `json:"error"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Complete sends one generateContent request and returns the first
// candidate's text. No streaming, no retry, no token limits.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("summary: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, url.PathEscape(p.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(reqBody)))
	if err != nil {
		return "", fmt.Errorf("summary: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary: send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("summary: decode response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("summary: gemini error %d (%s): %s",
			result.Error.Code, result.Error.Status, result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary: unexpected status %d", resp.StatusCode)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("summary: empty completion returned")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("summary: empty completion returned")
	}
	return text.String(), nil
}

// ModelInfo describes one model exposed by the provider.
type ModelInfo struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// SupportsGeneration reports whether the model can serve generateContent requests.
func (m ModelInfo) SupportsGeneration() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

type geminiListModelsResponse struct {
	Models        []ModelInfo  `json:"models"`
	NextPageToken string       `json:"nextPageToken"`
	Error         *geminiError `json:"error"`
}

// ListModels returns every model the provider exposes, following pagination.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	pageToken := ""
	for {
		endpoint := p.baseURL + "/v1beta/models?pageSize=200"
		if pageToken != "" {
			endpoint += "&pageToken=" + url.QueryEscape(pageToken)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("summary: create request: %w", err)
		}
		req.Header.Set("x-goog-api-key", p.apiKey)

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("summary: send request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("summary: read response: %w", err)
		}

		var result geminiListModelsResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("summary: unmarshal response: %w", err)
		}
		if result.Error != nil {
			return nil, fmt.Errorf("summary: gemini error %d (%s): %s",
				result.Error.Code, result.Error.Status, result.Error.Message)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("summary: unexpected status %d", resp.StatusCode)
		}

		models = append(models, result.Models...)
		if result.NextPageToken == "" {
			return models, nil
		}
		pageToken = result.NextPageToken
	}
}
