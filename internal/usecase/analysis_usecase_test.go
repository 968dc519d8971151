package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ecoloop/backend/internal/llm/extract"
	"github.com/ecoloop/backend/internal/llm/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	reply      string
	err        error
	lastPrompt string
	lastMime   string
}

func (f *fakeModel) Generate(ctx context.Context, p string) (string, error) {
	f.lastPrompt = p
	return f.reply, f.err
}

func (f *fakeModel) GenerateWithImage(ctx context.Context, p, mimeType string, image []byte) (string, error) {
	f.lastPrompt = p
	f.lastMime = mimeType
	return f.reply, f.err
}

var analysisAttrs = prompt.Attributes{
	Name:     "water bottle",
	Size:     "500ml",
	Type:     "single-use bottle",
	Material: "PET plastic",
	Cost:     "25",
}

func TestMetrics_ParsesFencedJSON(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "```json\n{\"trees_saved\": 2, \"water_saved\": \"40L\"}\n```"}
	uc := NewAnalysisUsecase(model, prompt.NewBuilder())

	got, err := uc.Metrics(context.Background(), analysisAttrs)
	require.NoError(t, err)
	assert.Equal(t, float64(2), got["trees_saved"])
	assert.Equal(t, "40L", got["water_saved"])
	assert.Contains(t, model.lastPrompt, "water bottle is a 500ml single-use bottle")
}

func TestMetrics_UnparseableReplyIsTypedFailure(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "I cannot estimate that, sorry."}
	uc := NewAnalysisUsecase(model, prompt.NewBuilder())

	_, err := uc.Metrics(context.Background(), analysisAttrs)
	var perr *extract.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "I cannot estimate that, sorry.", perr.Cleaned)
}

func TestRecycling_ModelErrorPropagates(t *testing.T) {
	t.Parallel()

	model := &fakeModel{err: errors.New("deadline exceeded")}
	uc := NewAnalysisUsecase(model, prompt.NewBuilder())

	_, err := uc.Recycling(context.Background(), analysisAttrs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestSupplyChain_SplitsSections(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "1. Bamboo harvested in Assam 2. About two weeks 3. Buy regional stock"}
	uc := NewAnalysisUsecase(model, prompt.NewBuilder())

	got, err := uc.SupplyChain(context.Background(), "bamboo toothbrush")
	require.NoError(t, err)
	assert.Equal(t, "Bamboo harvested in Assam", got.Process)
	assert.Equal(t, "About two weeks", got.Estimate)
	assert.Equal(t, "Buy regional stock", got.Recommendations)
	assert.Contains(t, model.lastPrompt, "bamboo toothbrush")
}

func TestSupplyChain_MissingSectionIsNotAnError(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "1. Sourcing 2. Ten days"}
	uc := NewAnalysisUsecase(model, prompt.NewBuilder())

	got, err := uc.SupplyChain(context.Background(), "solar lamp")
	require.NoError(t, err)
	assert.Equal(t, "Sourcing", got.Process)
	assert.Empty(t, got.Recommendations)
}

func TestPredictImage_ReturnsCleanedText(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "```json\n{\"name\": \"bottle\"}\n```"}
	uc := NewAnalysisUsecase(model, prompt.NewBuilder())

	got, err := uc.PredictImage(context.Background(), "image/jpeg", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, `{"name": "bottle"}`, got)
	assert.Equal(t, "image/jpeg", model.lastMime)
}
