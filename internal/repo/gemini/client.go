// Package gemini wraps the generative model behind a small text-in,
// text-out interface. Latency and failure modes live on the other side of
// this boundary, so every call takes the caller's context.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ecoloop/backend/internal/config"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
)

type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt, mimeType string, image []byte) (string, error)
}

type client struct {
	genkit *genkit.Genkit
	model  string
}

func NewClient(cfg *config.Config) (Client, error) {
	googleAI := &googlegenai.GoogleAI{
		APIKey: cfg.LLM.GoogleAIAPIKey,
	}
	g := genkit.Init(context.Background(), genkit.WithPlugins(googleAI))

	return &client{
		genkit: g,
		model:  cfg.LLM.Model,
	}, nil
}

func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := genkit.Generate(ctx, c.genkit,
		ai.WithMessages(ai.NewUserTextMessage(prompt)),
		ai.WithModelName(c.model),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return response.Text(), nil
}

func (c *client) GenerateWithImage(ctx context.Context, prompt, mimeType string, image []byte) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	message := ai.NewUserMessage(
		ai.NewTextPart(prompt),
		ai.NewMediaPart(mimeType, dataURL),
	)

	response, err := genkit.Generate(ctx, c.genkit,
		ai.WithMessages(message),
		ai.WithModelName(c.model),
	)
	if err != nil {
		return "", fmt.Errorf("generate content with image: %w", err)
	}
	return response.Text(), nil
}
