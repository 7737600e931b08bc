package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-pro"

// BioPrompt is what the model knows about the portfolio owner
type BioPrompt struct {
	FullName string
	JobTitle string
	Skills   []string
	Tone     string
	Count    int
	MaxWords int
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(defaultModel)
	model.SetTemperature(0.8)
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateBioDrafts asks the model for p.Count alternative "About me" texts.
func (c *GeminiClient) GenerateBioDrafts(ctx context.Context, p BioPrompt) ([]string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(buildPrompt(p)))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return parseDrafts(sb.String())
}

func buildPrompt(p BioPrompt) string {
	skills := "not specified"
	if len(p.Skills) > 0 {
		skills = strings.Join(p.Skills, ", ")
	}
	tone := p.Tone
	if tone == "" {
		tone = "professional and warm"
	}
	return fmt.Sprintf(`
		Write %d distinct "About me" paragraphs for a personal portfolio website.
		Name: %s
		Role: %s
		Skills: %s
		Tone: %s

		Each paragraph must be written in the first person and be at most %d words.
		Do not invent employers, degrees or numbers.
		Output: JSON array of strings. Example: ["I am...", "As a..."]
	`, p.Count, p.FullName, p.JobTitle, skills, tone, p.MaxWords)
}

// parseDrafts accepts a JSON array, optionally wrapped in a markdown code block,
// and falls back to one draft per non-empty line.
func parseDrafts(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var drafts []string
	if err := json.Unmarshal([]byte(text), &drafts); err != nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && line != "[" && line != "]" {
				drafts = append(drafts, strings.Trim(line, `",`))
			}
		}
		if len(drafts) == 0 {
			return nil, fmt.Errorf("failed to parse drafts: %w", err)
		}
	}

	out := drafts[:0]
	for _, d := range drafts {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out, nil
}
