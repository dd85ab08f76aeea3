package handlers

import (
	"net/http"

	"firstresponse/middleware"
	"firstresponse/services/settings"

	"github.com/gin-gonic/gin"
)

// GetSettingsHandler shows the username and language choices.
func GetSettingsHandler(c *gin.Context) {
	view, err := settings.View(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateSettingsHandler saves {"language": "<code>"}.
func UpdateSettingsHandler(c *gin.Context) {
	var req struct {
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	ctx := c.Request.Context()
	sess := middleware.SessionFrom(c)
	if err := settings.SetLanguage(ctx, sess, req.Language); err != nil {
		respondError(c, err)
		return
	}
	view, err := settings.View(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
