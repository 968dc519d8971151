package usecase

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/ecoloop/backend/internal/llm/extract"
	"github.com/ecoloop/backend/internal/llm/prompt"
	"github.com/ecoloop/backend/internal/repo/gemini"
)

// AnalysisUsecase runs product analysis through the generative model and
// normalizes whatever comes back. The JSON intents are strict: a reply we
// cannot parse is an upstream failure, never a guessed object. The supply
// chain intent is narrative and degrades to absent sections instead.
type AnalysisUsecase interface {
	PredictImage(ctx context.Context, mimeType string, image []byte) (string, error)
	Metrics(ctx context.Context, attrs prompt.Attributes) (map[string]any, error)
	Recycling(ctx context.Context, attrs prompt.Attributes) (map[string]any, error)
	SupplyChain(ctx context.Context, productName string) (extract.Sections, error)
}

type analysisUsecase struct {
	model   gemini.Client
	prompts *prompt.Builder
}

func NewAnalysisUsecase(model gemini.Client, prompts *prompt.Builder) AnalysisUsecase {
	return &analysisUsecase{
		model:   model,
		prompts: prompts,
	}
}

// PredictImage sends the photo to the model and returns the cleaned reply
// as-is. The detail intent asks for JSON but the client renders the text
// directly, so only fence cleanup is applied here.
func (u *analysisUsecase) PredictImage(ctx context.Context, mimeType string, image []byte) (string, error) {
	raw, err := u.model.GenerateWithImage(ctx, u.prompts.ProductDetail(), mimeType, image)
	if err != nil {
		return "", fmt.Errorf("model call for image prediction: %w", err)
	}
	return extract.CleanFences(raw), nil
}

func (u *analysisUsecase) Metrics(ctx context.Context, attrs prompt.Attributes) (map[string]any, error) {
	p, err := u.prompts.Metrics(attrs)
	if err != nil {
		return nil, err
	}
	return u.generateJSON(ctx, "metrics", p)
}

func (u *analysisUsecase) Recycling(ctx context.Context, attrs prompt.Attributes) (map[string]any, error) {
	p, err := u.prompts.Recycling(attrs)
	if err != nil {
		return nil, err
	}
	return u.generateJSON(ctx, "recycling", p)
}

func (u *analysisUsecase) SupplyChain(ctx context.Context, productName string) (extract.Sections, error) {
	p, err := u.prompts.SupplyChain(productName)
	if err != nil {
		return extract.Sections{}, err
	}

	raw, err := u.model.Generate(ctx, p)
	if err != nil {
		return extract.Sections{}, fmt.Errorf("model call for supply chain: %w", err)
	}
	return extract.SplitSections(raw), nil
}

func (u *analysisUsecase) generateJSON(ctx context.Context, intent, p string) (map[string]any, error) {
	raw, err := u.model.Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("model call for %s: %w", intent, err)
	}

	obj, err := extract.JSONObject(raw)
	if err != nil {
		log.Warnw(ctx, "model reply was not valid JSON", "intent", intent, "error", err)
		return nil, err
	}
	return obj, nil
}
