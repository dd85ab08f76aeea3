package handlers

import (
	"context"
	"net/http"

	"firstresponse/middleware"
	"firstresponse/models"
	"firstresponse/services/route"

	"github.com/gin-gonic/gin"
)

// defaultCenter is where the map opens before a route is drawn (Bengaluru).
var defaultCenter = [2]float64{12.9716, 77.5946}

type RoutePlanner interface {
	Plan(ctx context.Context, token string, req models.RouteRequest) (*models.RoutePlan, error)
}

type SafeRouteHandler struct {
	Planner RoutePlanner
}

func NewSafeRouteHandler(p RoutePlanner) *SafeRouteHandler {
	return &SafeRouteHandler{Planner: p}
}

// PageHandler returns what the empty safe-route page shows.
func (h *SafeRouteHandler) PageHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions": route.Regions(),
		"center":  defaultCenter,
	})
}

// SampleHandler returns the canned form for "load sample route".
func (h *SafeRouteHandler) SampleHandler(c *gin.Context) {
	c.JSON(http.StatusOK, route.SampleRequest())
}

// PlanHandler accepts the form as JSON or URL-encoded fields.
func (h *SafeRouteHandler) PlanHandler(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	plan, err := h.Planner.Plan(c.Request.Context(), middleware.AuthTokenFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
