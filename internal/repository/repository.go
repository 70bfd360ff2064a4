package repository

import (
	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByEmail finds an organization by its registration email
	FindByEmail(email string) (*models.Organization, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OrganizationID uint64
	Status         *models.TaskStatus
	AssigneeID     *uint64
	Pagination     *utils.PaginationParams
}

// AssigneeTaskCount is one row of the active-workload aggregate.
type AssigneeTaskCount struct {
	AssigneeID uint64 `gorm:"column:assignee_id"`
	Count      int    `gorm:"column:count"`
}

// TaskRepository defines the interface for task data access. Every query
// is scoped to one organization.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindInOrganization finds a task by ID within an organization scope
	FindInOrganization(id, organizationID uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first, together
	// with the total match count before pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByAssignee retrieves every task assigned to one employee
	ListByAssignee(employeeID, organizationID uint64) ([]models.Task, error)

	// CountActiveByAssignee returns the number of assigned or in-progress
	// tasks per employee for the whole organization in one pass
	CountActiveByAssignee(organizationID uint64) (map[uint64]int, error)

	// CountByStatus returns task counts grouped by status
	CountByStatus(organizationID uint64) (map[models.TaskStatus]int64, error)

	// ListRecentCompleted returns the most recently completed tasks
	ListRecentCompleted(organizationID uint64, limit int) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id, organizationID uint64) error
}

// DepartmentStats is one row of the department breakdown aggregate.
type DepartmentStats struct {
	Department string  `gorm:"column:department" json:"department"`
	Count      int64   `gorm:"column:count" json:"count"`
	AvgScore   float64 `gorm:"column:avg_score" json:"avg_score"`
}

// EmployeeRepository defines the interface for employee data access.
// Every query except FindByEmail is scoped to one organization.
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindInOrganization finds an employee by ID within an organization scope
	FindInOrganization(id, organizationID uint64) (*models.Employee, error)

	// FindByEmail finds an employee by email across organizations
	// (employee portal login)
	FindByEmail(email string) (*models.Employee, error)

	// FindByOrgEmail finds an employee by email within one organization
	FindByOrgEmail(organizationID uint64, email string) (*models.Employee, error)

	// List retrieves all employees of an organization, newest hires first
	List(organizationID uint64) ([]models.Employee, error)

	// ListPaged retrieves one page of employees together with the total
	// employee count
	ListPaged(organizationID uint64, params utils.PaginationParams) ([]models.Employee, int64, error)

	// ListActive retrieves active employees ordered by ID
	ListActive(organizationID uint64) ([]models.Employee, error)

	// TopByProductivity retrieves the highest scoring active employees
	TopByProductivity(organizationID uint64, limit int) ([]models.Employee, error)

	// DepartmentBreakdown aggregates headcount and average productivity
	// score per department
	DepartmentBreakdown(organizationID uint64) ([]DepartmentStats, error)

	// CountByStatus returns total and active employee counts
	CountByStatus(organizationID uint64) (total, active int64, err error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// UpdateScores overwrites the computed metric fields in a single update
	UpdateScores(employeeID, organizationID uint64, productivityScore, completionRate, avgTaskTime float64) error

	// Delete removes an employee
	Delete(id, organizationID uint64) error
}
