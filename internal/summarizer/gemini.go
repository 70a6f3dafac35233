package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/gemini"
	"google.golang.org/genai"
)

// GeminiCompleter completes text with a Gemini model.
type GeminiCompleter struct {
	client *gemini.Client
	model  string
}

func NewGeminiCompleter(client *gemini.Client, model string) *GeminiCompleter {
	return &GeminiCompleter{client: client, model: model}
}

func (g *GeminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	return g.client.Generate(ctx, g.model, genai.Text(user), cfg)
}
