// Package resume scores résumé text with a language model.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	domainJob "jobboard/internal/domain/job"
	"jobboard/internal/logger"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	maxResumeRunes      = 20000
	maxDescriptionRunes = 4000
)

const scorePrompt = `You are an expert recruiter and applicant tracking system specialist.
Score the resume below and answer with valid JSON only, no markdown, using exactly this shape:
{"score": <integer 0-100>, "summary": "<two sentences>", "strengths": ["..."], "improvements": ["..."]}

RESUME:
%s
%s`

type ScoreRequest struct {
	ResumeText string     `json:"resume_text" validate:"required,notblank"`
	JobID      *uuid.UUID `json:"job_id"`
}

type ScoreResponse struct {
	Score        int      `json:"score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Service wraps an optional model; a nil model means scoring is unavailable.
type Service struct {
	model   llms.Model
	jobRepo domainJob.Repository
}

func NewService(model llms.Model, jobRepo domainJob.Repository) *Service {
	return &Service{model: model, jobRepo: jobRepo}
}

func (s *Service) Available() bool {
	return s.model != nil
}

func (s *Service) Score(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err).
			WithDetails(utils.ValidationDetails(err))
	}
	if s.model == nil {
		return nil, appErrors.NewAppError(appErrors.CodeAIUnavailable, "Resume scoring is not available", nil)
	}

	target := ""
	if req.JobID != nil {
		j, err := s.jobRepo.GetActiveByID(ctx, *req.JobID)
		if err != nil {
			return nil, err
		}
		target = fmt.Sprintf("\nTARGET JOB: %s at %s\n%s", j.Title, j.Company, truncate(j.Description, maxDescriptionRunes))
	}

	prompt := fmt.Sprintf(scorePrompt, truncate(req.ResumeText, maxResumeRunes), target)
	answer, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt,
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(1024),
	)
	if err != nil {
		logger.Error("Resume scoring request failed",
			zap.String("event", "resume_score_failed"),
			zap.Error(err),
		)
		return nil, appErrors.NewAppError(appErrors.CodeAIUnavailable, "Resume scoring is temporarily unavailable", err)
	}

	resp, err := parseScore(answer)
	if err != nil {
		logger.Warn("Unparseable resume score answer",
			zap.String("event", "resume_score_bad_answer"),
			zap.Error(err),
		)
		return nil, appErrors.NewAppError(appErrors.CodeAIBadResponse, "Could not interpret the scoring result", err)
	}

	logger.Info("Resume scored",
		zap.Int("score", resp.Score),
		zap.Bool("targeted", req.JobID != nil),
		zap.String("event", "resume_scored"),
	)
	return resp, nil
}

var errNoJSON = errors.New("no JSON object in model answer")

// parseScore accepts a bare JSON object or one embedded in surrounding text.
func parseScore(answer string) (*ScoreResponse, error) {
	var raw struct {
		Score        *float64 `json:"score"`
		Summary      string   `json:"summary"`
		Strengths    []string `json:"strengths"`
		Improvements []string `json:"improvements"`
	}

	if err := json.Unmarshal([]byte(strings.TrimSpace(answer)), &raw); err != nil {
		start := strings.Index(answer, "{")
		end := strings.LastIndex(answer, "}")
		if start < 0 || end <= start {
			return nil, errNoJSON
		}
		if err := json.Unmarshal([]byte(answer[start:end+1]), &raw); err != nil {
			return nil, fmt.Errorf("decode model answer: %w", err)
		}
	}
	if raw.Score == nil {
		return nil, errors.New("model answer has no score")
	}

	resp := &ScoreResponse{
		Score:        clampScore(*raw.Score),
		Summary:      raw.Summary,
		Strengths:    raw.Strengths,
		Improvements: raw.Improvements,
	}
	if resp.Strengths == nil {
		resp.Strengths = []string{}
	}
	if resp.Improvements == nil {
		resp.Improvements = []string{}
	}
	return resp, nil
}

func clampScore(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v + 0.5)
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
