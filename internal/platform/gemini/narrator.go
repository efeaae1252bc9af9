// Package gemini renders structured query results as short conversational
// answers using the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/finwell/finwell-mcp/internal/domain/query"
)

// DefaultModelName is the Gemini model used for narration
const DefaultModelName = "gemini-2.0-flash"

const systemPrompt = "You are a personal finance assistant. You are given a " +
	"user's question and the structured analysis that answers it. Write a " +
	"short, friendly answer in plain prose.\n\n" +
	"Rules:\n" +
	"- Use only the numbers in the structured analysis. Never invent figures.\n" +
	"- Format amounts as dollars with two decimals.\n" +
	"- Keep it to two or three sentences.\n" +
	"- Do not use Markdown, bullet points, or code fences.\n"

// Narrator implements query.Narrator on top of the Gemini API
type Narrator struct {
	client *genai.Client
	model  string
}

// NewNarrator creates a Narrator authenticated with the given API key
func NewNarrator(ctx context.Context, apiKey string) (*Narrator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Narrator{
		client: client,
		model:  DefaultModelName,
	}, nil
}

// Narrate renders the structured result as a short conversational answer
func (n *Narrator) Narrate(ctx context.Context, question string, result *query.Result) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result for narration: %w", err)
	}

	prompt := systemPrompt +
		"\nQuestion: " + question +
		"\n\nAnalysis:\n" + string(payload)

	resp, err := n.client.Models.GenerateContent(ctx, n.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate narration: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty narration response")
	}
	return text, nil
}
