package repository

import (
	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/database"
	"github.com/ai-hrms/hr-management-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindInOrganization finds a task by ID within an organization scope
func (r *GormTaskRepository) FindInOrganization(id, organizationID uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("organization_id = ?", organizationID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter, newest first, together with
// the total match count before pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).
		Scopes(database.OrganizationScope(filter.OrganizationID))

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Pagination != nil {
		query = query.Scopes(database.Paginate(*filter.Pagination))
	}

	if err := query.Preload("Assignee").Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByAssignee retrieves every task assigned to one employee
func (r *GormTaskRepository) ListByAssignee(employeeID, organizationID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("assignee_id = ? AND organization_id = ?", employeeID, organizationID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountActiveByAssignee returns the number of assigned or in-progress
// tasks per employee for the whole organization in one aggregate pass
func (r *GormTaskRepository) CountActiveByAssignee(organizationID uint64) (map[uint64]int, error) {
	var rows []AssigneeTaskCount
	err := r.db.Model(&models.Task{}).
		Select("assignee_id, COUNT(*) AS count").
		Where("organization_id = ?", organizationID).
		Where("status IN ?", []models.TaskStatus{models.TaskStatusAssigned, models.TaskStatusInProgress}).
		Where("assignee_id IS NOT NULL").
		Group("assignee_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int, len(rows))
	for _, row := range rows {
		counts[row.AssigneeID] = row.Count
	}
	return counts, nil
}

// CountByStatus returns task counts grouped by status
func (r *GormTaskRepository) CountByStatus(organizationID uint64) (map[models.TaskStatus]int64, error) {
	type statusCount struct {
		Status models.TaskStatus `gorm:"column:status"`
		Count  int64             `gorm:"column:count"`
	}

	var rows []statusCount
	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("organization_id = ?", organizationID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListRecentCompleted returns the most recently completed tasks
func (r *GormTaskRepository) ListRecentCompleted(organizationID uint64, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("organization_id = ? AND status = ?", organizationID, models.TaskStatusCompleted).
		Preload("Assignee").
		Order("completed_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id, organizationID uint64) error {
	result := r.db.Where("organization_id = ?", organizationID).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
