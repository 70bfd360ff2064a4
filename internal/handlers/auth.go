package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ai-hrms/hr-management-api/internal/constants"
	"github.com/ai-hrms/hr-management-api/internal/dto"
	apierrors "github.com/ai-hrms/hr-management-api/internal/errors"
	"github.com/ai-hrms/hr-management-api/internal/middleware"
	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/services"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

// AuthHandler coordinates organization authentication HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	jwtSecret   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

// Register creates a new organization account and returns a token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string                  `json:"name" binding:"required"`
		Email    string                  `json:"email" binding:"required,email"`
		Password string                  `json:"password" binding:"required"`
		Industry string                  `json:"industry"`
		Size     models.OrganizationSize `json:"size"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Industry: req.Industry,
		Size:     req.Size,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateOrganizationToken(org.ID, h.jwtSecret)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token:        token,
		Organization: dto.ToOrganizationDTO(*org),
	})
}

// Login authenticates an organization and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateOrganizationToken(org.ID, h.jwtSecret)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:        token,
		Organization: dto.ToOrganizationDTO(*org),
	})
}

// Me returns the authenticated organization.
func (h *AuthHandler) Me(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	org, err := h.authService.GetOrganization(orgID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"org": dto.ToOrganizationDTO(*org)})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRegistrationInvalid),
		errors.Is(err, services.ErrInvalidOrgSize):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
