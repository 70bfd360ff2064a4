package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ai-hrms/hr-management-api/internal/dto"
	apierrors "github.com/ai-hrms/hr-management-api/internal/errors"
	"github.com/ai-hrms/hr-management-api/internal/middleware"
	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/services"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

// EmployeeHandler coordinates admin employee management handlers.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// ListEmployees returns one page of the organization's employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	pagination := utils.GetPaginationParams(c)

	employees, total, err := h.employeeService.ListEmployees(orgID, pagination)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch employees")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"pagination": utils.PaginationResponse{
			Page:  pagination.Page,
			Limit: pagination.Limit,
			Total: total,
		},
	})
}

// CreateEmployee creates a new employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateEmployeeRequest struct {
		Name          string                `json:"name" binding:"required"`
		Email         string                `json:"email" binding:"required,email"`
		Role          string                `json:"role" binding:"required"`
		Department    string                `json:"department" binding:"required"`
		Skills        models.SkillList      `json:"skills"`
		WalletAddress string                `json:"wallet_address"`
		Status        models.EmployeeStatus `json:"status"`
		Password      string                `json:"password"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.CreateEmployee(orgID, services.CreateEmployeeInput{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		Department:    req.Department,
		Skills:        req.Skills,
		WalletAddress: req.WalletAddress,
		Status:        req.Status,
		Password:      req.Password,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployee returns one employee together with their task history
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	employee, tasks, err := h.employeeService.GetEmployee(employeeID, orgID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EmployeeDetailDTO{
		Employee: *employee,
		Tasks:    tasks,
	})
}

// UpdateEmployee applies an allow-listed update to an employee
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateEmployeeRequest struct {
		Name          *string                `json:"name"`
		Email         *string                `json:"email"`
		Role          *string                `json:"role"`
		Department    *string                `json:"department"`
		Skills        *models.SkillList      `json:"skills"`
		WalletAddress *string                `json:"wallet_address"`
		Status        *models.EmployeeStatus `json:"status"`
		Password      *string                `json:"password"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(employeeID, orgID, services.UpdateEmployeeInput{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		Department:    req.Department,
		Skills:        req.Skills,
		WalletAddress: req.WalletAddress,
		Status:        req.Status,
		Password:      req.Password,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes an employee
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(employeeID, orgID); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmployeeEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmployeeFieldsMissing),
		errors.Is(err, services.ErrInvalidEmployeeStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
