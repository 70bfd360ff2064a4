package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrTaskTitleRequired       = errors.New("title is required")
	ErrInvalidTaskPriority     = errors.New("invalid task priority")
	ErrInvalidTaskStatus       = errors.New("invalid task status")
	ErrInvalidStatusTransition = errors.New("task status can only move forward")
	ErrAssigneeNotInOrg        = errors.New("assignee is not an employee of this organization")
)

// TaskService handles task business logic, including the forward-only
// status lifecycle and the productivity recalculation cascade on
// completion.
type TaskService struct {
	taskRepo     repository.TaskRepository
	employeeRepo repository.EmployeeRepository
	productivity *ProductivityService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, employeeRepo repository.EmployeeRepository, productivity *ProductivityService) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		productivity: productivity,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       models.TaskPriority
	RequiredSkills models.SkillList
	Deadline       *time.Time
	AssigneeID     *uint64
}

// UpdateTaskInput is the allow-listed set of fields an admin may change.
// Nil pointers leave the field untouched. The computed lifecycle fields
// (completed_at) are never settable directly.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *models.TaskPriority
	Status         *models.TaskStatus
	RequiredSkills *models.SkillList
	Deadline       *time.Time
	ClearDeadline  bool
	AssigneeID     *uint64
}

// ListTasks returns one page of the organization's tasks, optionally
// filtered by status, together with the total match count
func (s *TaskService) ListTasks(organizationID uint64, status *models.TaskStatus, pagination utils.PaginationParams) ([]models.Task, int64, error) {
	if status != nil && !models.ValidTaskStatus(*status) {
		return nil, 0, ErrInvalidTaskStatus
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		OrganizationID: organizationID,
		Status:         status,
		Pagination:     &pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task with its assignee loaded
func (s *TaskService) GetTask(taskID, organizationID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindInOrganization(taskID, organizationID, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task, optionally pre-assigned. A pre-assigned
// task starts in the assigned state instead of unassigned.
func (s *TaskService) CreateTask(organizationID uint64, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}
	if input.Priority != "" && !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidTaskPriority
	}

	task := models.NewTask(organizationID, input.Title, input.Description, input.Priority, input.RequiredSkills, input.Deadline)

	if input.AssigneeID != nil {
		if err := s.ensureEmployeeInOrganization(*input.AssigneeID, organizationID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
		task.Status = models.TaskStatusAssigned
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies an allow-listed update. Status changes must follow
// the forward-only lifecycle; the transition into completed stamps
// CompletedAt once and triggers the assignee's productivity
// recalculation after the task is persisted.
func (s *TaskService) UpdateTask(taskID, organizationID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindInOrganization(taskID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidTaskPriority
		}
		task.Priority = *input.Priority
	}
	if input.RequiredSkills != nil {
		task.RequiredSkills = *input.RequiredSkills
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	if input.AssigneeID != nil {
		if err := s.ensureEmployeeInOrganization(*input.AssigneeID, organizationID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
		if task.Status == models.TaskStatusUnassigned {
			task.Status = models.TaskStatusAssigned
		}
	}

	completedNow := false
	if input.Status != nil && *input.Status != task.Status {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		if !models.CanTransition(task.Status, *input.Status) {
			return nil, ErrInvalidStatusTransition
		}
		task.Status = *input.Status
		if task.Status == models.TaskStatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
			completedNow = true
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if completedNow && task.AssigneeID != nil {
		if err := s.productivity.Recalculate(*task.AssigneeID, organizationID); err != nil {
			return nil, fmt.Errorf("failed to recalculate assignee scores: %w", err)
		}
	}

	return s.taskRepo.FindInOrganization(task.ID, organizationID, "Assignee")
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(taskID, organizationID uint64) error {
	if err := s.taskRepo.Delete(taskID, organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListMyTasks returns the tasks assigned to one employee
func (s *TaskService) ListMyTasks(employeeID, organizationID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByAssignee(employeeID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// AdvanceMyTask lets an assignee move their own task forward. Only the
// two final transitions are permitted: assigned to in_progress and
// in_progress to completed. Completion cascades into a productivity
// recalculation for the employee.
func (s *TaskService) AdvanceMyTask(taskID, employeeID, organizationID uint64, status models.TaskStatus) (*models.Task, error) {
	task, err := s.taskRepo.FindInOrganization(taskID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	// Tasks assigned to someone else look like they don't exist.
	if task.AssigneeID == nil || *task.AssigneeID != employeeID {
		return nil, ErrTaskNotFound
	}

	allowed := (task.Status == models.TaskStatusAssigned && status == models.TaskStatusInProgress) ||
		(task.Status == models.TaskStatusInProgress && status == models.TaskStatusCompleted)
	if !allowed {
		return nil, ErrInvalidStatusTransition
	}

	task.Status = status
	if status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if status == models.TaskStatusCompleted {
		if err := s.productivity.Recalculate(employeeID, organizationID); err != nil {
			return nil, fmt.Errorf("failed to recalculate scores: %w", err)
		}
	}

	return task, nil
}

func (s *TaskService) ensureEmployeeInOrganization(employeeID, organizationID uint64) error {
	if _, err := s.employeeRepo.FindInOrganization(employeeID, organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotInOrg
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	return nil
}
