// Package summary proxies free-text queries to a generative-text provider.
//
// Defines a Provider interface and a Gemini implementation. The interface
// allows handlers and tests to swap the provider without changing consumers.
package summary

import (
	"context"
	"fmt"
)

// Provider returns generated text for a prompt.
type Provider interface {
	// Complete sends a single completion request with no conversation
	// history and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt embeds the user's raw query verbatim in the fixed
// research-assistant instruction template. The template is plain text, not
// structured markup, so no escaping is applied.
func BuildPrompt(userQuery string) string {
	return fmt.Sprintf(`You are an expert academic research assistant.
Based on the following user query: "%s", generate a concise and relevant summary of 2 or 3 sentences
that captures the main idea of the search. This summary will be shown in a user interface.`, userQuery)
}

// StaticProvider returns a fixed completion and counts calls. Used in tests.
type StaticProvider struct {
	Text  string
	Err   error
	Calls int
}

// Complete returns the configured text or error.
func (p *StaticProvider) Complete(_ context.Context, _ string) (string, error) {
	p.Calls++
	if p.Err != nil {
		return "", p.Err
	}
	return p.Text, nil
}
