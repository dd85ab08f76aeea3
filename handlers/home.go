package handlers

import (
	"net/http"

	"firstresponse/middleware"
	"firstresponse/services/home"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	Service home.HomeService
}

func NewHomeHandler(svc home.HomeService) *HomeHandler {
	return &HomeHandler{Service: svc}
}

// GetHomeHandler renders the tool catalog with the backend health badge.
func (h *HomeHandler) GetHomeHandler(c *gin.Context) {
	view, err := h.Service.View(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
