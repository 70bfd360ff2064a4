package services

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
)

// Productivity score weighting and recency rules.
const (
	completionRateWeight = 0.5
	onTimeRateWeight     = 0.3

	recencyWindow       = 30 * 24 * time.Hour
	recencyBonusPerTask = 4.0
	recencyBonusCap     = 20.0
)

// ProductivityService recomputes an employee's performance metrics from
// that employee's task history and persists the result. Stateless per
// call.
type ProductivityService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository

	// now is swapped in tests to pin the recency window.
	now func() time.Time
}

// NewProductivityService creates a new ProductivityService
func NewProductivityService(employeeRepo repository.EmployeeRepository, taskRepo repository.TaskRepository) *ProductivityService {
	return &ProductivityService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
		now:          time.Now,
	}
}

// Recalculate recomputes and persists one employee's productivity score
// and completion rate. An employee with no task history is left
// untouched; existing scores are never reset to zero.
func (s *ProductivityService) Recalculate(employeeID, organizationID uint64) error {
	if _, err := s.employeeRepo.FindInOrganization(employeeID, organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to find employee: %w", err)
	}

	tasks, err := s.taskRepo.ListByAssignee(employeeID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to load task history: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	var completed []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted {
			completed = append(completed, t)
		}
	}

	completionRate := float64(len(completed)) / float64(len(tasks)) * 100

	// On-time rate among completed tasks that carried a deadline. No
	// deadlines at all defaults to 100: employees are not penalized for
	// tasks that never had one.
	onTimeRate := 100.0
	withDeadline := 0
	onTime := 0
	for _, t := range completed {
		if t.Deadline == nil {
			continue
		}
		withDeadline++
		if t.CompletedAt != nil && !t.CompletedAt.After(*t.Deadline) {
			onTime++
		}
	}
	if withDeadline > 0 {
		onTimeRate = float64(onTime) / float64(withDeadline) * 100
	}

	// Completions inside the trailing 30 days, exclusive lower bound.
	cutoff := s.now().Add(-recencyWindow)
	recent := 0
	for _, t := range completed {
		if t.CompletedAt != nil && t.CompletedAt.After(cutoff) {
			recent++
		}
	}
	recencyBonus := math.Min(recencyBonusCap, float64(recent)*recencyBonusPerTask)

	score := math.Min(100, completionRate*completionRateWeight+onTimeRate*onTimeRateWeight+recencyBonus)

	// Mean completion time in hours across completed tasks.
	avgTaskTime := 0.0
	if len(completed) > 0 {
		var totalHours float64
		for _, t := range completed {
			if t.CompletedAt != nil {
				totalHours += t.CompletedAt.Sub(t.CreatedAt).Hours()
			}
		}
		avgTaskTime = totalHours / float64(len(completed))
	}

	err = s.employeeRepo.UpdateScores(employeeID, organizationID, roundToTenth(score), roundToTenth(completionRate), roundToTenth(avgTaskTime))
	if err != nil {
		return fmt.Errorf("failed to persist scores: %w", err)
	}
	return nil
}

// ScoreSummary is the refreshed per-employee result of a bulk
// recalculation.
type ScoreSummary struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	ProductivityScore  float64 `json:"productivity_score"`
	TaskCompletionRate float64 `json:"task_completion_rate"`
}

// RecalculationFailure reports one employee whose recalculation failed
// inside a bulk run.
type RecalculationFailure struct {
	EmployeeID uint64 `json:"employee_id"`
	Error      string `json:"error"`
}

// RecalculateAll recomputes scores for every employee of the
// organization. Employees are dispatched concurrently; one employee's
// failure does not abort the batch, it is reported in the failure list.
func (s *ProductivityService) RecalculateAll(organizationID uint64) ([]ScoreSummary, []RecalculationFailure, error) {
	employees, err := s.employeeRepo.List(organizationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []RecalculationFailure
	)
	for _, emp := range employees {
		wg.Add(1)
		go func(employeeID uint64) {
			defer wg.Done()
			if err := s.Recalculate(employeeID, organizationID); err != nil {
				mu.Lock()
				failures = append(failures, RecalculationFailure{
					EmployeeID: employeeID,
					Error:      err.Error(),
				})
				mu.Unlock()
			}
		}(emp.ID)
	}
	wg.Wait()

	refreshed, err := s.employeeRepo.List(organizationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload employees: %w", err)
	}

	summaries := make([]ScoreSummary, len(refreshed))
	for i, emp := range refreshed {
		summaries[i] = ScoreSummary{
			ID:                 emp.ID,
			Name:               emp.Name,
			ProductivityScore:  emp.ProductivityScore,
			TaskCompletionRate: emp.TaskCompletionRate,
		}
	}

	return summaries, failures, nil
}

// roundToTenth rounds to one decimal place.
func roundToTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
