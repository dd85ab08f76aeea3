package handlers

import (
	"net/http"

	"firstresponse/middleware"
	"firstresponse/models"
	"firstresponse/services/rationing"

	"github.com/gin-gonic/gin"
)

type RationingHandler struct {
	Service rationing.RationingService
}

func NewRationingHandler(svc rationing.RationingService) *RationingHandler {
	return &RationingHandler{Service: svc}
}

func (h *RationingHandler) AnalyzeHandler(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.RationingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Lang == "" {
		lang, err := middleware.SessionFrom(c).Language(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		req.Lang = lang
	}

	plan, err := h.Service.Analyze(ctx, middleware.AuthTokenFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Rationing plan ready")
	c.JSON(http.StatusOK, plan)
}
