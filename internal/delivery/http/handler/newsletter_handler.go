package handler

import (
	"net/http"

	"jobboard/internal/usecase/newsletter"
	"jobboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	service *newsletter.Service
}

func NewNewsletterHandler(service *newsletter.Service) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

func (h *NewsletterHandler) RegisterRoutes(router *gin.RouterGroup) {
	n := router.Group("/newsletter")
	{
		n.POST("/subscribe", h.Subscribe)
		n.POST("/contact", h.Contact)
	}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req newsletter.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Subscribe(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Subscribed successfully", nil)
}

func (h *NewsletterHandler) Contact(c *gin.Context) {
	var req newsletter.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Contact(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Thank you for reaching out, we will get back to you soon", nil)
}
