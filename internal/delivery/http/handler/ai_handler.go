package handler

import (
	"net/http"

	"jobboard/internal/usecase/resume"
	"jobboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	service *resume.Service
}

func NewAIHandler(service *resume.Service) *AIHandler {
	return &AIHandler{service: service}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	{
		ai.POST("/resume-score", h.ScoreResume)
	}
}

func (h *AIHandler) ScoreResume(c *gin.Context) {
	var req resume.ScoreRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Score(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Resume scored successfully", resp)
}
