package handler

import (
	"net/http"

	"jobboard/internal/usecase/profile"
	"jobboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *profile.Service
}

func NewProfileHandler(service *profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	p := router.Group("/profile")
	{
		p.GET("", h.GetProfile)
		p.PUT("", h.UpdateProfile)
		p.PATCH("", h.UpdateProfile)

		p.GET("/experience", h.ListExperience)
		p.POST("/experience", h.CreateExperience)
		p.GET("/experience/:id", h.GetExperience)
		p.PUT("/experience/:id", h.UpdateExperience)
		p.DELETE("/experience/:id", h.DeleteExperience)

		p.GET("/education", h.ListEducation)
		p.POST("/education", h.CreateEducation)
		p.GET("/education/:id", h.GetEducation)
		p.PUT("/education/:id", h.UpdateEducation)
		p.DELETE("/education/:id", h.DeleteEducation)

		p.GET("/skills", h.ListSkills)
		p.POST("/skills", h.CreateSkill)
		p.GET("/skills/:id", h.GetSkill)
		p.PUT("/skills/:id", h.UpdateSkill)
		p.DELETE("/skills/:id", h.DeleteSkill)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", resp)
}

// UpdateProfile serves both PUT and PATCH; absent fields are left unchanged.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), accountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", resp)
}

func (h *ProfileHandler) ListExperience(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.service.ListExperience(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Experience retrieved successfully", items)
}

func (h *ProfileHandler) GetExperience(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "experience")
	if !ok {
		return
	}

	item, err := h.service.GetExperience(c.Request.Context(), accountID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Experience retrieved successfully", item)
}

func (h *ProfileHandler) CreateExperience(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	var req profile.ExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.CreateExperience(c.Request.Context(), accountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Experience added successfully", item)
}

func (h *ProfileHandler) UpdateExperience(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "experience")
	if !ok {
		return
	}

	var req profile.ExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.UpdateExperience(c.Request.Context(), accountID, id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Experience updated successfully", item)
}

func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "experience")
	if !ok {
		return
	}

	if err := h.service.DeleteExperience(c.Request.Context(), accountID, id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Experience deleted successfully", nil)
}

func (h *ProfileHandler) ListEducation(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.service.ListEducation(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Education retrieved successfully", items)
}

func (h *ProfileHandler) GetEducation(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "education")
	if !ok {
		return
	}

	item, err := h.service.GetEducation(c.Request.Context(), accountID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Education retrieved successfully", item)
}

func (h *ProfileHandler) CreateEducation(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	var req profile.EducationRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.CreateEducation(c.Request.Context(), accountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Education added successfully", item)
}

func (h *ProfileHandler) UpdateEducation(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "education")
	if !ok {
		return
	}

	var req profile.EducationRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.UpdateEducation(c.Request.Context(), accountID, id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Education updated successfully", item)
}

func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "education")
	if !ok {
		return
	}

	if err := h.service.DeleteEducation(c.Request.Context(), accountID, id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Education deleted successfully", nil)
}

func (h *ProfileHandler) ListSkills(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.service.ListSkills(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Skills retrieved successfully", items)
}

func (h *ProfileHandler) GetSkill(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "skill")
	if !ok {
		return
	}

	item, err := h.service.GetSkill(c.Request.Context(), accountID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Skill retrieved successfully", item)
}

func (h *ProfileHandler) CreateSkill(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	var req profile.SkillRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.CreateSkill(c.Request.Context(), accountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Skill added successfully", item)
}

func (h *ProfileHandler) UpdateSkill(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "skill")
	if !ok {
		return
	}

	var req profile.SkillRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.UpdateSkill(c.Request.Context(), accountID, id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Skill updated successfully", item)
}

func (h *ProfileHandler) DeleteSkill(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "skill")
	if !ok {
		return
	}

	if err := h.service.DeleteSkill(c.Request.Context(), accountID, id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Skill deleted successfully", nil)
}
