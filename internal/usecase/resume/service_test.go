package resume

import (
	"context"
	"errors"
	"testing"

	domainJob "jobboard/internal/domain/job"
	"jobboard/internal/infrastructure/database/memory"
	appErrors "jobboard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	answer  string
	err     error
	prompts []string
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.answer}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestScore_Unavailable(t *testing.T) {
	svc := NewService(nil, memory.NewJobRepository())

	_, err := svc.Score(context.Background(), &ScoreRequest{ResumeText: "Go developer"})

	assert.False(t, svc.Available())
	assert.Equal(t, appErrors.CodeAIUnavailable, codeOf(t, err))
}

func TestScore_ParsesAndClamps(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		score  int
	}{
		{"bare json", `{"score": 82, "summary": "Solid", "strengths": ["Go"], "improvements": []}`, 82},
		{"wrapped in prose", "Here you go:\n```json\n{\"score\": 140, \"summary\": \"x\"}\n```", 100},
		{"negative", `{"score": -3}`, 0},
		{"fractional", `{"score": 74.6}`, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeModel{answer: tt.answer}, memory.NewJobRepository())

			resp, err := svc.Score(context.Background(), &ScoreRequest{ResumeText: "Go developer"})
			require.NoError(t, err)
			assert.Equal(t, tt.score, resp.Score)
			assert.NotNil(t, resp.Strengths)
			assert.NotNil(t, resp.Improvements)
		})
	}
}

func TestScore_BadAnswer(t *testing.T) {
	for _, answer := range []string{"I cannot help with that.", `{"summary": "no score"}`, "{not json}"} {
		svc := NewService(&fakeModel{answer: answer}, memory.NewJobRepository())

		_, err := svc.Score(context.Background(), &ScoreRequest{ResumeText: "Go developer"})
		assert.Equal(t, appErrors.CodeAIBadResponse, codeOf(t, err), answer)
	}
}

func TestScore_ModelError(t *testing.T) {
	svc := NewService(&fakeModel{err: errors.New("quota exceeded")}, memory.NewJobRepository())

	_, err := svc.Score(context.Background(), &ScoreRequest{ResumeText: "Go developer"})
	assert.Equal(t, appErrors.CodeAIUnavailable, codeOf(t, err))
}

func TestScore_IncludesTargetJob(t *testing.T) {
	jobs := memory.NewJobRepository()
	j := &domainJob.Job{Title: "Platform Engineer", Company: "Globex", Description: "Kubernetes all day", IsActive: true}
	require.NoError(t, jobs.Create(context.Background(), j))
	model := &fakeModel{answer: `{"score": 60}`}
	svc := NewService(model, jobs)

	_, err := svc.Score(context.Background(), &ScoreRequest{ResumeText: "Go developer", JobID: &j.ID})
	require.NoError(t, err)
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Platform Engineer at Globex")
}

func TestScore_RequiresText(t *testing.T) {
	svc := NewService(&fakeModel{answer: `{"score": 60}`}, memory.NewJobRepository())

	_, err := svc.Score(context.Background(), &ScoreRequest{ResumeText: "   "})
	assert.Equal(t, appErrors.CodeValidation, codeOf(t, err))
}
