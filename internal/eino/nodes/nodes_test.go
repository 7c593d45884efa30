package nodes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/prompts"
)

func TestGenerationPrompter_Render(t *testing.T) {
	catalog := prompts.NewCatalog()
	ctx := context.Background()

	tests := []struct {
		name       string
		askTokens  int
		input      *GenerationInput
		wantParams models.Parameters
		wantErr    error
	}{
		{
			name:  "clause for patent kind",
			input: &GenerationInput{Task: TaskClause, Spec: models.PromptSpec{UseCase: models.UseCaseDefinitions, DocumentKind: models.DocumentKindPatent, Topic: "图像编码"}},
		},
		{
			name:       "ask with configured max tokens",
			askTokens:  1000,
			input:      &GenerationInput{Task: TaskAsk, Question: "q"},
			wantParams: models.Parameters{models.ParamMaxTokens: 1000},
		},
		{
			name:  "ask without override",
			input: &GenerationInput{Task: TaskAsk, Question: "q"},
		},
		{
			name:    "unknown kind",
			input:   &GenerationInput{Task: TaskClause, Spec: models.PromptSpec{UseCase: models.UseCaseScope, DocumentKind: "contract", Topic: "x"}},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "nil input",
			wantErr: models.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewGenerationPrompter(catalog, tt.askTokens).Render(ctx, tt.input)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, p.Prompt)
			assert.Equal(t, tt.wantParams, p.Params)
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	p := NewGenerationPrompter(prompts.NewCatalog(), 0)
	in := &GenerationInput{Task: TaskClause, Spec: models.PromptSpec{UseCase: models.UseCaseTestMethods, Topic: "人脸识别"}}

	a, err := p.Render(context.Background(), in)
	require.NoError(t, err)
	b, err := p.Render(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, a.Prompt, b.Prompt)
}

func TestAssembleMessages(t *testing.T) {
	msgs, err := AssembleMessages(context.Background(), &ChatInput{})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "You are a helpful assistant.", msgs[0].Content)

	_, err = AssembleMessages(context.Background(), nil)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestToCompletionNilReply(t *testing.T) {
	_, err := ToCompletion(context.Background(), nil)
	var upstream *models.UpstreamError
	assert.True(t, errors.As(err, &upstream))
}
