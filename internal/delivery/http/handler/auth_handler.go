package handler

import (
	"net/http"
	"strings"

	accountUsecase "jobboard/internal/usecase/account"
	"jobboard/internal/usecase/passwordreset"
	"jobboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	MessageResetRequested = "If an account with that email exists, a password reset link has been sent."
	MessageResetDone      = "Password has been reset successfully."
)

type AuthHandler struct {
	accounts *accountUsecase.Service
	resets   *passwordreset.Service
}

func NewAuthHandler(accounts *accountUsecase.Service, resets *passwordreset.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts, resets: resets}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/reset-password/verify", h.VerifyResetToken)
	}
}

func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/me", h.Me)
		auth.POST("/logout", h.Logout)
		auth.POST("/logout-all", h.LogoutAll)
		auth.POST("/change-password", h.ChangePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req accountUsecase.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Account registered successfully", authResponse)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req accountUsecase.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

// refreshTokenFrom reads the token from the JSON body, falling back to a
// bearer Authorization header.
func refreshTokenFrom(c *gin.Context) string {
	var req accountUsecase.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := refreshTokenFrom(c)
	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token required")
		return
	}

	tokenPair, err := h.accounts.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", tokenPair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	var req accountUsecase.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), accountID, req.RefreshToken); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.accounts.LogoutAll(c.Request.Context(), accountID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logged out from all sessions", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	acct, err := h.accounts.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account retrieved successfully", acct)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	accountID, ok := currentUser(c)
	if !ok {
		return
	}

	var req accountUsecase.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), accountID, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

// ForgotPassword answers identically whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req passwordreset.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resets.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, MessageResetRequested, nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req passwordreset.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resets.RedeemReset(c.Request.Context(), req.Token, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, MessageResetDone, nil)
}

func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	if err := h.resets.VerifyReset(c.Request.Context(), c.Query("token")); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reset token is valid", passwordreset.VerifyResponse{Valid: true})
}
