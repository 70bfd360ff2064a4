package services

import (
	"fmt"
	"math"

	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
)

const (
	topEmployeeLimit    = 5
	recentActivityLimit = 10
)

// DashboardStats are the headline workforce numbers.
type DashboardStats struct {
	TotalEmployees  int64 `json:"total_employees"`
	ActiveEmployees int64 `json:"active_employees"`
	TotalTasks      int64 `json:"total_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	AssignedTasks   int64 `json:"assigned_tasks"`
	UnassignedTasks int64 `json:"unassigned_tasks"`
	CompletionRate  int   `json:"completion_rate"`
}

// Dashboard bundles the analytics view for one organization.
type Dashboard struct {
	Stats          DashboardStats               `json:"stats"`
	TopEmployees   []models.Employee            `json:"top_employees"`
	RecentActivity []models.Task                `json:"recent_activity"`
	DeptBreakdown  []repository.DepartmentStats `json:"dept_breakdown"`
}

// DashboardService aggregates workforce analytics.
type DashboardService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(employeeRepo repository.EmployeeRepository, taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
	}
}

// GetDashboard builds the analytics summary for an organization.
func (s *DashboardService) GetDashboard(organizationID uint64) (*Dashboard, error) {
	totalEmployees, activeEmployees, err := s.employeeRepo.CountByStatus(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	taskCounts, err := s.taskRepo.CountByStatus(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	var totalTasks int64
	for _, count := range taskCounts {
		totalTasks += count
	}

	completed := taskCounts[models.TaskStatusCompleted]
	completionRate := 0
	if totalTasks > 0 {
		completionRate = int(math.Round(float64(completed) / float64(totalTasks) * 100))
	}

	topEmployees, err := s.employeeRepo.TopByProductivity(organizationID, topEmployeeLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top employees: %w", err)
	}

	recentActivity, err := s.taskRepo.ListRecentCompleted(organizationID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	deptBreakdown, err := s.employeeRepo.DepartmentBreakdown(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load department breakdown: %w", err)
	}

	return &Dashboard{
		Stats: DashboardStats{
			TotalEmployees:  totalEmployees,
			ActiveEmployees: activeEmployees,
			TotalTasks:      totalTasks,
			CompletedTasks:  completed,
			InProgressTasks: taskCounts[models.TaskStatusInProgress],
			AssignedTasks:   taskCounts[models.TaskStatusAssigned],
			UnassignedTasks: taskCounts[models.TaskStatusUnassigned],
			CompletionRate:  completionRate,
		},
		TopEmployees:   topEmployees,
		RecentActivity: recentActivity,
		DeptBreakdown:  deptBreakdown,
	}, nil
}
