// Package rationing requests a resource distribution plan for a group.
package rationing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firstresponse/models"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"go.uber.org/zap"
)

var (
	ErrMissingFields  = errors.New("Please fill in all fields.")
	ErrInvalidGroup   = errors.New("People and days must be greater than 0.")
	ErrNegativeAmount = errors.New("Resource amounts cannot be negative.")
	ErrAnalysisFailed = errors.New("Failed to analyze resources. Please try again.")
	errUnknownLevel   = errors.New("unknown resource status")
)

type API interface {
	Ration(ctx context.Context, token string, req models.RationingRequest) (*upstream.Response, error)
}

type RationingService interface {
	Analyze(ctx context.Context, token string, req models.RationingRequest) (*models.RationingPlan, error)
}

type DefaultRationingService struct {
	API          API
	DemoFallback bool
}

func NewService(api API, demoFallback bool) *DefaultRationingService {
	return &DefaultRationingService{API: api, DemoFallback: demoFallback}
}

// Validate checks the form before anything is sent.
func Validate(req models.RationingRequest) error {
	if strings.TrimSpace(req.FoodItems) == "" {
		return ErrMissingFields
	}
	if req.PeopleCount <= 0 || req.DaysCount <= 0 {
		return ErrInvalidGroup
	}
	if req.WaterLiters < 0 || req.MedicinesUnits < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (s *DefaultRationingService) Analyze(ctx context.Context, token string, req models.RationingRequest) (*models.RationingPlan, error) {
	logger := utils.GetLogger()

	req.FoodItems = strings.TrimSpace(req.FoodItems)
	if err := Validate(req); err != nil {
		return nil, err
	}

	resp, err := s.API.Ration(ctx, token, req)
	if err != nil {
		if !upstream.IsTransport(err) {
			return nil, err
		}
		if !s.DemoFallback {
			return nil, upstream.ErrUnavailable
		}
		logger.Info("Rationing backend unreachable, computing demo plan", zap.Error(err))
		return DemoPlan(req), nil
	}
	if err := resp.Check(upstream.PathRation); err != nil {
		logger.Warn("Rationing request rejected", zap.Error(err))
		return nil, ErrAnalysisFailed
	}

	var plan models.RationingPlan
	if err := resp.Decode(&plan); err != nil {
		logger.Error("Undecodable rationing response", zap.Error(err))
		return nil, ErrAnalysisFailed
	}
	for _, rs := range plan.ResourceStatus {
		if !rs.Status.Valid() {
			logger.Error("Rationing response carried an unknown status",
				zap.String("resource", rs.Resource),
				zap.String("status", string(rs.Status)),
			)
			return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, errUnknownLevel)
		}
	}
	if plan.Explanation == nil {
		plan.Explanation = []string{}
	}
	if plan.ResourceStatus == nil {
		plan.ResourceStatus = []models.ResourceStatus{}
	}
	return &plan, nil
}
