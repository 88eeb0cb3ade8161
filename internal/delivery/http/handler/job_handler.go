package handler

import (
	"net/http"

	"jobboard/internal/middleware"
	"jobboard/internal/usecase/application"
	jobUsecase "jobboard/internal/usecase/job"
	"jobboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobs         *jobUsecase.Service
	applications *application.Service
}

func NewJobHandler(jobs *jobUsecase.Service, applications *application.Service) *JobHandler {
	return &JobHandler{jobs: jobs, applications: applications}
}

// RegisterRoutes mounts the public listing endpoints. optionalAuth lets
// signed-in applicants link applications to their account.
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	jobs := router.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/categories", h.Categories)
		jobs.GET("/stats", h.Stats)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("/:id/apply", optionalAuth, h.Apply)
	}
}

func (h *JobHandler) RegisterApplicationRoutes(router *gin.RouterGroup) {
	applications := router.Group("/applications")
	{
		applications.GET("", h.ListApplications)
		applications.GET("/:id", h.GetApplication)
	}
}

func (h *JobHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	jobs := router.Group("/jobs")
	{
		jobs.POST("", h.CreateJob)
		jobs.PUT("/:id", h.UpdateJob)
		jobs.DELETE("/:id", h.DeleteJob)
	}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	resp, err := h.jobs.Search(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Jobs retrieved successfully", resp)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := pathID(c, "id", "job")
	if !ok {
		return
	}

	j, err := h.jobs.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job retrieved successfully", j)
}

func (h *JobHandler) Categories(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", h.jobs.Categories())
}

func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.jobs.Stats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stats retrieved successfully", stats)
}

func (h *JobHandler) Apply(c *gin.Context) {
	jobID, ok := pathID(c, "id", "job")
	if !ok {
		return
	}

	var req application.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	var accountID *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		accountID = &id
	}

	resp, err := h.applications.Apply(c.Request.Context(), jobID, accountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Application submitted successfully", resp)
}

func (h *JobHandler) ListApplications(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	apps, err := h.applications.ListApplications(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Applications retrieved successfully", apps)
}

func (h *JobHandler) GetApplication(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "id", "application")
	if !ok {
		return
	}

	app, err := h.applications.GetApplication(c.Request.Context(), accountID, applicationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Application retrieved successfully", app)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req jobUsecase.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	j, err := h.jobs.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Job created successfully", j)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, ok := pathID(c, "id", "job")
	if !ok {
		return
	}

	var req jobUsecase.UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	j, err := h.jobs.UpdateJob(c.Request.Context(), jobID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job updated successfully", j)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := pathID(c, "id", "job")
	if !ok {
		return
	}

	if err := h.jobs.DeleteJob(c.Request.Context(), jobID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job deactivated successfully", nil)
}
