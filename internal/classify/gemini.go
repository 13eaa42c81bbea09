package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// DefaultModelName is the Gemini model used for tag suggestions.
const DefaultModelName = "gemini-2.5-flash"

// GeminiSuggester proposes tags for transactions the fuzzy matcher finds no
// history for, by asking a Gemini model to pick from the existing tag
// vocabulary. It never invents tags outside the vocabulary.
type GeminiSuggester struct {
	Model string
}

// NewGeminiSuggester creates a suggester using the default model.
func NewGeminiSuggester() *GeminiSuggester {
	return &GeminiSuggester{Model: DefaultModelName}
}

// Suggest returns model-proposed tags for target, restricted to the tag
// vocabulary of the existing history.
func (g *GeminiSuggester) Suggest(ctx context.Context, history []*transaction.Transaction, target *transaction.Transaction) ([]string, error) {
	vocabulary := make([]string, 0)
	for tag := range transaction.Tags(history) {
		vocabulary = append(vocabulary, tag)
	}
	sort.Strings(vocabulary)
	if len(vocabulary) == 0 {
		return []string{}, nil
	}

	prompt := "You are a personal-finance transaction classifier.\n\n" +
		"Task:\n" +
		"- Pick the tags that describe the transaction below.\n" +
		"- Only use tags from the allowed list. Do not invent new tags.\n" +
		"- Output STRICT JSON only: a JSON array of strings.\n" +
		"- Output an empty array if no tag fits.\n\n" +
		"Allowed tags: " + strings.Join(vocabulary, ", ") + "\n\n" +
		fmt.Sprintf("Transaction: description %q, amount %s\n\n",
			target.Description, transaction.FormatAmount(target.AmountCents)) +
		"Return ONLY valid raw JSON.\n" +
		"Do NOT wrap the response in code fences.\n"

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("Suggest: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("Suggest: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("Suggest: empty response from model")
	}

	var tags []string
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &tags); err != nil {
		return nil, fmt.Errorf("Suggest: unmarshal JSON: %w\nraw response: %s", err, rawText)
	}

	// Drop anything outside the vocabulary in case the model ignored the
	// instructions.
	allowed := make(map[string]struct{}, len(vocabulary))
	for _, tag := range vocabulary {
		allowed[tag] = struct{}{}
	}
	kept := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := allowed[tag]; ok {
			kept = append(kept, tag)
		}
	}
	sort.Strings(kept)
	return kept, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the raw-JSON instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
