package repository

import (
	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/database"
	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindInOrganization finds an employee by ID within an organization scope
func (r *GormEmployeeRepository) FindInOrganization(id, organizationID uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("organization_id = ?", organizationID).First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail finds an employee by email across organizations
func (r *GormEmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByOrgEmail finds an employee by email within one organization
func (r *GormEmployeeRepository) FindByOrgEmail(organizationID uint64, email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("organization_id = ? AND email = ?", organizationID, email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List retrieves all employees of an organization, newest hires first
func (r *GormEmployeeRepository) List(organizationID uint64) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.
		Where("organization_id = ?", organizationID).
		Order("joined_at DESC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// ListPaged retrieves one page of employees together with the total
// employee count
func (r *GormEmployeeRepository) ListPaged(organizationID uint64, params utils.PaginationParams) ([]models.Employee, int64, error) {
	query := r.db.Model(&models.Employee{}).
		Scopes(database.OrganizationScope(organizationID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []models.Employee
	err := query.
		Scopes(database.Paginate(params)).
		Order("joined_at DESC").
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListActive retrieves active employees. Ordered by ID so downstream
// ranking has a deterministic input order.
func (r *GormEmployeeRepository) ListActive(organizationID uint64) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.
		Where("organization_id = ? AND status = ?", organizationID, models.EmployeeStatusActive).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// TopByProductivity retrieves the highest scoring active employees
func (r *GormEmployeeRepository) TopByProductivity(organizationID uint64, limit int) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.
		Where("organization_id = ? AND status = ?", organizationID, models.EmployeeStatusActive).
		Order("productivity_score DESC").
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// DepartmentBreakdown aggregates headcount and average productivity score per department
func (r *GormEmployeeRepository) DepartmentBreakdown(organizationID uint64) ([]DepartmentStats, error) {
	var stats []DepartmentStats
	err := r.db.Model(&models.Employee{}).
		Select("department, COUNT(*) AS count, AVG(productivity_score) AS avg_score").
		Where("organization_id = ?", organizationID).
		Group("department").
		Order("count DESC").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// CountByStatus returns total and active employee counts
func (r *GormEmployeeRepository) CountByStatus(organizationID uint64) (total, active int64, err error) {
	err = r.db.Model(&models.Employee{}).
		Where("organization_id = ?", organizationID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.Model(&models.Employee{}).
		Where("organization_id = ? AND status = ?", organizationID, models.EmployeeStatusActive).
		Count(&active).Error
	if err != nil {
		return 0, 0, err
	}

	return total, active, nil
}

// Update updates an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// UpdateScores overwrites the computed metric fields in a single update
func (r *GormEmployeeRepository) UpdateScores(employeeID, organizationID uint64, productivityScore, completionRate, avgTaskTime float64) error {
	return r.db.Model(&models.Employee{}).
		Where("id = ? AND organization_id = ?", employeeID, organizationID).
		Updates(map[string]interface{}{
			"productivity_score":   productivityScore,
			"task_completion_rate": completionRate,
			"avg_task_time":        avgTaskTime,
		}).Error
}

// Delete removes an employee
func (r *GormEmployeeRepository) Delete(id, organizationID uint64) error {
	result := r.db.Where("organization_id = ?", organizationID).Delete(&models.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
