package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"csvdash/internal/ai"
	"csvdash/internal/dataset"
)

// MaxPromptRecords bounds how many rows get embedded in a question prompt.
const MaxPromptRecords = 50

// Generator turns datasets into model prompts and model responses into
// user-facing text.
type Generator struct {
	client *ai.Client
	model  string
}

func NewGenerator(client *ai.Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Summarize asks the model for a short narrative over the display dataset.
func (g *Generator) Summarize(ctx context.Context, data dataset.Dataset, xKey, yKey string) (string, error) {
	prompt, err := SummaryPrompt(data, xKey, yKey)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Generate(ctx, ai.GenerateRequest{
		Model:    g.model,
		Messages: []ai.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Ask answers a free-form question about the dataset. Only the first
// MaxPromptRecords rows are sent.
func (g *Generator) Ask(ctx context.Context, data dataset.Dataset, question string) (string, error) {
	prompt, err := QuestionPrompt(data, question)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Generate(ctx, ai.GenerateRequest{
		Model:    g.model,
		Messages: []ai.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Review is the structured variant of Ask: the model is asked for a JSON
// object listing data issues plus one piece of advice.
type Review struct {
	Issues []string `json:"issues"`
	Advice string   `json:"advice"`
}

func (g *Generator) Review(ctx context.Context, data dataset.Dataset, question string) (*Review, error) {
	prompt, err := ReviewPrompt(data, question)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Generate(ctx, ai.GenerateRequest{
		Model:    g.model,
		Messages: []ai.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}
	return ParseReview(resp.Text()), nil
}

// SummaryPrompt embeds the full display dataset (already capped by the
// view's maxPoints) together with the human-readable axis names.
func SummaryPrompt(data dataset.Dataset, xKey, yKey string) (string, error) {
	blob, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}
	return fmt.Sprintf(
		"You are a data analyst. Summarize the following dataset in a few sentences. "+
			"The chart plots %q on the X axis against %q on the Y axis. "+
			"Mention the overall trend and anything unusual.\n\nData:\n%s",
		xKey, yKey, blob), nil
}

// QuestionPrompt embeds a bounded prefix of the dataset plus the user's
// question.
func QuestionPrompt(data dataset.Dataset, question string) (string, error) {
	blob, err := json.Marshal(prefix(data, MaxPromptRecords))
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}
	return fmt.Sprintf(
		"Answer the question using only the dataset below (first %d rows shown).\n\n"+
			"Data:\n%s\n\nQuestion: %s",
		MaxPromptRecords, blob, question), nil
}

// ReviewPrompt requests a strict JSON answer shape.
func ReviewPrompt(data dataset.Dataset, question string) (string, error) {
	blob, err := json.Marshal(prefix(data, MaxPromptRecords))
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}
	return fmt.Sprintf(
		"Review the dataset below and answer the question. Respond with JSON only, "+
			"exactly this shape: {\"issues\": [\"...\"], \"advice\": \"...\"}.\n\n"+
			"Data:\n%s\n\nQuestion: %s",
		blob, question), nil
}

// ParseReview recovers a Review from model output. Models often wrap JSON
// in Markdown code fences, so fences are stripped before decoding; if the
// payload still is not valid JSON the result is a fixed error pair rather
// than a failure.
func ParseReview(raw string) *Review {
	cleaned := stripFences(raw)
	var r Review
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return &Review{
			Issues: []string{"The model response could not be parsed."},
			Advice: "Try asking again or rephrase the question.",
		}
	}
	return &r
}

func prefix(d dataset.Dataset, n int) dataset.Dataset {
	if len(d) <= n {
		return d
	}
	return d[:n]
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag such as "json".
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
