package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/application/user/usecases"
	"github.com/fixora-app/fixora/internal/interfaces/http/middleware"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

type AuthHandler struct {
	registerUseCase registerStudentUseCase
	loginUseCase    loginUseCase
	currentUserUC   getCurrentUserUseCase
	logger          logger.Interface
}

func NewAuthHandler(
	registerUC registerStudentUseCase,
	loginUC loginUseCase,
	currentUserUC getCurrentUserUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		currentUserUC:   currentUserUC,
		logger:          logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Hostel   string `json:"hostel" binding:"required,hostel"`
	Room     string `json:"room" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register. Only students sign themselves up.
// @Summary Register a student
// @Description Create a student account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Student registration"
// @Success 201 {object} utils.APIResponse{data=dto.AuthDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterStudentCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Hostel:   req.Hostel,
		Room:     req.Room,
	})
	if err != nil {
		h.logger.Warnw("registration failed", "email", utils.MaskEmail(req.Email), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Registration successful")
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Exchange email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=dto.AuthDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("login failed", "email", utils.MaskEmail(req.Email), "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// GetCurrentUser handles GET /users/me
// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 401 {object} utils.APIResponse
// @Router /users/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.currentUserUC.Execute(c.Request.Context(), profile.SID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
