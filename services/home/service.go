// Package home builds the dashboard landing page.
package home

import (
	"context"

	"firstresponse/models"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"go.uber.org/zap"
)

var tools = []models.ToolCard{
	{Title: "First Aid", Description: "Get immediate medical guidance and emergency procedures", Path: "/dashboard/first-aid"},
	{Title: "Rationing", Description: "Calculate and manage resource distribution efficiently", Path: "/dashboard/rationing"},
	{Title: "Safe Route", Description: "Plan secure travel routes and avoid dangerous areas", Path: "/dashboard/safe-route"},
	{Title: "Flyer Scanner", Description: "Detect misinformation in emergency communications", Path: "/dashboard/flyer-scanner"},
	{Title: "Settings", Description: "Customize your toolkit preferences and language", Path: "/dashboard/settings"},
}

// Tools returns the tool catalog in display order.
func Tools() []models.ToolCard {
	out := make([]models.ToolCard, len(tools))
	copy(out, tools)
	return out
}

type API interface {
	Health(ctx context.Context, token string) (*upstream.Response, error)
}

type Identity interface {
	AuthToken(ctx context.Context) (string, bool, error)
	Username(ctx context.Context) (string, error)
}

type HomeService interface {
	View(ctx context.Context, id Identity) (*models.HomeView, error)
}

type DefaultHomeService struct {
	API          API
	DemoFallback bool
}

func NewService(api API, demoFallback bool) *DefaultHomeService {
	return &DefaultHomeService{API: api, DemoFallback: demoFallback}
}

// CheckHealth probes the API. An unreachable API reads as healthy demo mode
// when fallback is enabled.
func (s *DefaultHomeService) CheckHealth(ctx context.Context, token string) (models.BackendHealth, bool) {
	resp, err := s.API.Health(ctx, token)
	if err != nil {
		utils.GetLogger().Info("Health check could not reach the API", zap.Error(err))
		if upstream.IsTransport(err) && s.DemoFallback {
			return models.HealthHealthy, true
		}
		return models.HealthUnhealthy, false
	}
	if !resp.IsSuccess() {
		return models.HealthUnhealthy, false
	}
	return models.HealthHealthy, false
}

func (s *DefaultHomeService) View(ctx context.Context, id Identity) (*models.HomeView, error) {
	token, _, err := id.AuthToken(ctx)
	if err != nil {
		return nil, err
	}
	username, err := id.Username(ctx)
	if err != nil {
		return nil, err
	}
	health, demo := s.CheckHealth(ctx, token)
	return &models.HomeView{
		Username: username,
		Health:   health,
		Demo:     demo,
		Tools:    Tools(),
	}, nil
}
