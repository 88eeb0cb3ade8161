package handler

import (
	"errors"
	"net/http"

	domainAccount "jobboard/internal/domain/account"
	domainJob "jobboard/internal/domain/job"
	"jobboard/internal/logger"
	"jobboard/internal/middleware"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var codeStatus = map[string]int{
	appErrors.CodeValidation:            http.StatusBadRequest,
	appErrors.CodeWeakPassword:          http.StatusBadRequest,
	appErrors.CodeInvalidToken:          http.StatusBadRequest,
	appErrors.CodeInvalidQueryParameter: http.StatusBadRequest,
	appErrors.CodeDuplicateApplication:  http.StatusBadRequest,
	appErrors.CodeAlreadySubscribed:     http.StatusBadRequest,
	appErrors.CodeDuplicateSkill:        http.StatusBadRequest,
	appErrors.CodeAIUnavailable:         http.StatusServiceUnavailable,
	appErrors.CodeAIBadResponse:         http.StatusBadGateway,
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var queryErr *domainJob.InvalidQueryParameterError
	var appErr *appErrors.AppError

	switch {
	case errors.As(err, &queryErr):
		utils.CodedErrorResponse(c, http.StatusBadRequest, appErrors.CodeInvalidQueryParameter, queryErr.Error(),
			gin.H{"field": queryErr.Field, "value": queryErr.Value})
	case errors.As(err, &appErr):
		status, ok := codeStatus[appErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("Upstream dependency error",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("code", appErr.Code),
				zap.Error(err),
			)
		}
		utils.CodedErrorResponse(c, status, appErr.Code, appErr.Message, appErr.Details)
	case errors.Is(err, appErrors.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrUserInactive),
		errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainJob.ErrDuplicateApplication):
		utils.CodedErrorResponse(c, http.StatusBadRequest, appErrors.CodeDuplicateApplication, err.Error(), nil)
	case errors.Is(err, domainAccount.ErrDuplicateSkill):
		utils.CodedErrorResponse(c, http.StatusBadRequest, appErrors.CodeDuplicateSkill, err.Error(), nil)
	case errors.Is(err, domainAccount.ErrAccountNotFound),
		errors.Is(err, domainAccount.ErrExperienceNotFound),
		errors.Is(err, domainAccount.ErrEducationNotFound),
		errors.Is(err, domainAccount.ErrSkillNotFound),
		errors.Is(err, domainJob.ErrJobNotFound),
		errors.Is(err, domainJob.ErrApplicationNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON decodes the body and writes the 4xx itself when it cannot.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}
	return id, true
}

func pathID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
