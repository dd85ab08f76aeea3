// Package firstaid asks the API for first-aid guidance.
package firstaid

import (
	"context"
	"errors"
	"strings"

	"firstresponse/models"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"go.uber.org/zap"
)

var (
	ErrEmptyQuestion  = errors.New("Please describe the emergency.")
	ErrGuidanceFailed = errors.New("Failed to get first aid guidance. Please try again.")
)

type API interface {
	FirstAid(ctx context.Context, token, question, lang string) (*upstream.Response, error)
}

// FirstAidService answers a question in the chosen language.
type FirstAidService interface {
	Ask(ctx context.Context, token, question, lang string) (*models.FirstAidGuidance, error)
}

type DefaultFirstAidService struct {
	API          API
	DemoFallback bool
}

func NewService(api API, demoFallback bool) *DefaultFirstAidService {
	return &DefaultFirstAidService{API: api, DemoFallback: demoFallback}
}

func (s *DefaultFirstAidService) Ask(ctx context.Context, token, question, lang string) (*models.FirstAidGuidance, error) {
	logger := utils.GetLogger()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if lang == "" {
		lang = "en"
	}

	resp, err := s.API.FirstAid(ctx, token, question, lang)
	if err != nil {
		if !upstream.IsTransport(err) {
			return nil, err
		}
		if !s.DemoFallback {
			return nil, upstream.ErrUnavailable
		}
		logger.Info("First aid backend unreachable, serving demo guidance", zap.Error(err))
		return demoGuidance(question, lang), nil
	}
	if err := resp.Check(upstream.PathFirstAid); err != nil {
		logger.Warn("First aid request rejected", zap.Error(err))
		return nil, ErrGuidanceFailed
	}

	g, err := decodeGuidance(resp.Body)
	if err != nil {
		logger.Error("Undecodable first aid response", zap.Error(err))
		return nil, ErrGuidanceFailed
	}
	if g.Question == "" {
		g.Question = question
	}
	if g.Language == "" {
		g.Language = lang
	}
	return g, nil
}

func demoGuidance(question, lang string) *models.FirstAidGuidance {
	return &models.FirstAidGuidance{
		Question: question,
		Language: lang,
		Steps: NormalizeSteps(Answer{
			Structured: true,
			Steps:      []string{"Ensure scene is safe", "Check for responsiveness", "Call for help"},
		}),
		Checklist: []models.ChecklistItem{
			{Action: "Check Breathing", HowTo: "Tilt head back", Avoid: "Do not move neck"},
		},
		Demo: true,
	}
}
