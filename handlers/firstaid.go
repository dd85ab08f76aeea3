package handlers

import (
	"net/http"

	"firstresponse/middleware"
	"firstresponse/services/firstaid"

	"github.com/gin-gonic/gin"
)

type FirstAidHandler struct {
	Service firstaid.FirstAidService
}

func NewFirstAidHandler(svc firstaid.FirstAidService) *FirstAidHandler {
	return &FirstAidHandler{Service: svc}
}

// AskHandler answers ?question= in ?lang=, defaulting to the saved language.
func (h *FirstAidHandler) AskHandler(c *gin.Context) {
	ctx := c.Request.Context()
	lang := c.Query("lang")
	if lang == "" {
		saved, err := middleware.SessionFrom(c).Language(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		lang = saved
	}

	guidance, err := h.Service.Ask(ctx, middleware.AuthTokenFrom(c), c.Query("question"), lang)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guidance)
}
