package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGeminiProviderComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash-latest:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}

		var req geminiGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("unexpected request shape: %+v", req)
		}

		resp := geminiGenerateResponse{}
		resp.Candidates = []struct {
			Content geminiContent `json:"content"`
		}{
			{Content: geminiContent{Parts: []geminiPart{{Text: "A concise "}, {Text: "summary."}}}},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer server.Close()

	p := NewGeminiProvider("test-key", "gemini-1.5-flash-latest", server.URL, 5*time.Second)
	text, err := p.Complete(context.Background(), BuildPrompt("climate change"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "A concise summary." {
		t.Errorf("unexpected completion text: %q", text)
	}
}

func TestGeminiProviderCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota exceeded"}}`))
	}))
	defer server.Close()

	p := NewGeminiProvider("test-key", "gemini-1.5-flash-latest", server.URL, 5*time.Second)
	_, err := p.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for API failure, got nil")
	}
	if !strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		t.Errorf("error should carry the API status: %v", err)
	}
}

func TestGeminiProviderCompleteEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider("test-key", "gemini-1.5-flash-latest", server.URL, 5*time.Second)
	_, err := p.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty candidates, got nil")
	}
}

func TestGeminiProviderListModels(t *testing.T) {
	page := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		page++
		switch page {
		case 1:
			_, _ = w.Write([]byte(`{
				"models": [
					{"name": "models/gemini-1.5-flash-latest", "supportedGenerationMethods": ["generateContent", "countTokens"]},
					{"name": "models/text-embedding-004", "supportedGenerationMethods": ["embedContent"]}
				],
				"nextPageToken": "page-2"
			}`))
		default:
			if got := r.URL.Query().Get("pageToken"); got != "page-2" {
				t.Errorf("unexpected page token: %q", got)
			}
			_, _ = w.Write([]byte(`{
				"models": [
					{"name": "models/gemini-1.5-pro", "supportedGenerationMethods": ["generateContent"]}
				]
			}`))
		}
	}))
	defer server.Close()

	p := NewGeminiProvider("test-key", "gemini-1.5-flash-latest", server.URL, 5*time.Second)
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(models))
	}

	var generators []string
	for _, m := range models {
		if m.SupportsGeneration() {
			generators = append(generators, m.Name)
		}
	}
	want := []string{"models/gemini-1.5-flash-latest", "models/gemini-1.5-pro"}
	if len(generators) != len(want) || generators[0] != want[0] || generators[1] != want[1] {
		t.Errorf("unexpected generation-capable models: %v", generators)
	}
}

func TestBuildPromptEmbedsQueryVerbatim(t *testing.T) {
	q := `transformers "attention" & RNNs`
	prompt := BuildPrompt(q)
	if !strings.Contains(prompt, q) {
		t.Errorf("prompt should contain the raw query: %s", prompt)
	}
}
