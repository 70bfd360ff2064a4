package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ai-hrms/hr-management-api/internal/dto"
	apierrors "github.com/ai-hrms/hr-management-api/internal/errors"
	"github.com/ai-hrms/hr-management-api/internal/middleware"
	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/services"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

// EmployeeAuthHandler coordinates the employee portal handlers.
type EmployeeAuthHandler struct {
	employeeService *services.EmployeeService
	taskService     *services.TaskService
	jwtSecret       string
}

// NewEmployeeAuthHandler creates a new EmployeeAuthHandler
func NewEmployeeAuthHandler(employeeService *services.EmployeeService, taskService *services.TaskService, jwtSecret string) *EmployeeAuthHandler {
	return &EmployeeAuthHandler{
		employeeService: employeeService,
		taskService:     taskService,
		jwtSecret:       jwtSecret,
	}
}

// Login authenticates an employee and returns a portal token.
func (h *EmployeeAuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	employee, err := h.employeeService.Login(req.Email, req.Password)
	if err != nil {
		respondEmployeeAuthError(c, err)
		return
	}

	token, err := utils.GenerateEmployeeToken(employee.ID, employee.OrganizationID, h.jwtSecret)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.EmployeeAuthResponse{
		Token:    token,
		Employee: dto.ToPortalEmployeeDTO(*employee),
	})
}

// Me returns the authenticated employee.
func (h *EmployeeAuthHandler) Me(c *gin.Context) {
	employeeID, orgID, ok := portalScope(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetPortalEmployee(employeeID, orgID)
	if err != nil {
		respondEmployeeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// MyTasks returns the tasks assigned to the authenticated employee.
func (h *EmployeeAuthHandler) MyTasks(c *gin.Context) {
	employeeID, orgID, ok := portalScope(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListMyTasks(employeeID, orgID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateMyTask advances one of the employee's own tasks. Only the two
// forward transitions assigned to in_progress and in_progress to
// completed are allowed.
func (h *EmployeeAuthHandler) UpdateMyTask(c *gin.Context) {
	employeeID, orgID, ok := portalScope(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.AdvanceMyTask(taskID, employeeID, orgID, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func portalScope(c *gin.Context) (employeeID, orgID uint64, ok bool) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}
	orgID, exists = middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}
	return employeeID, orgID, true
}

func respondEmployeeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNoPasswordSet):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrEmployeeInactive):
		apierrors.Forbidden(c, "Your account is inactive. Contact your admin.")
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
