package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeEmailTaken    = errors.New("employee email already exists in this organization")
	ErrEmployeeFieldsMissing = errors.New("name, email, role and department are required")
	ErrInvalidEmployeeStatus = errors.New("invalid employee status")
	ErrEmployeeInactive      = errors.New("employee account is inactive")
	ErrNoPasswordSet         = errors.New("no password set for this employee")
)

// EmployeeService handles employee management and portal authentication.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo repository.EmployeeRepository, taskRepo repository.TaskRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
	}
}

// CreateEmployeeInput represents input for creating an employee
type CreateEmployeeInput struct {
	Name          string
	Email         string
	Role          string
	Department    string
	Skills        models.SkillList
	WalletAddress string
	Status        models.EmployeeStatus
	Password      string
}

// UpdateEmployeeInput is the allow-listed set of fields an admin may
// change. The computed metric fields are deliberately absent: only the
// productivity recalculator writes those.
type UpdateEmployeeInput struct {
	Name          *string
	Email         *string
	Role          *string
	Department    *string
	Skills        *models.SkillList
	WalletAddress *string
	Status        *models.EmployeeStatus
	Password      *string
}

// ListEmployees returns one page of the organization's employees
// together with the total headcount
func (s *EmployeeService) ListEmployees(organizationID uint64, pagination utils.PaginationParams) ([]models.Employee, int64, error) {
	employees, total, err := s.employeeRepo.ListPaged(organizationID, pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// GetEmployee returns an employee together with their task history
func (s *EmployeeService) GetEmployee(employeeID, organizationID uint64) (*models.Employee, []models.Task, error) {
	employee, err := s.employeeRepo.FindInOrganization(employeeID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEmployeeNotFound
		}
		return nil, nil, fmt.Errorf("failed to find employee: %w", err)
	}

	tasks, err := s.taskRepo.ListByAssignee(employeeID, organizationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load employee tasks: %w", err)
	}

	return employee, tasks, nil
}

// CreateEmployee creates an employee. Email is stored lower-cased and
// must be unique within the organization. The password, when provided,
// is hashed explicitly before the record is persisted.
func (s *EmployeeService) CreateEmployee(organizationID uint64, input CreateEmployeeInput) (*models.Employee, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Role) == "" ||
		strings.TrimSpace(input.Department) == "" {
		return nil, ErrEmployeeFieldsMissing
	}
	if input.Status != "" && !models.ValidEmployeeStatus(input.Status) {
		return nil, ErrInvalidEmployeeStatus
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.employeeRepo.FindByOrgEmail(organizationID, email); err == nil {
		return nil, ErrEmployeeEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check employee email: %w", err)
	}

	employee := models.NewEmployee(organizationID, input.Name, email, input.Role, input.Department, input.Skills, input.Status)
	employee.WalletAddress = input.WalletAddress

	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		employee.PasswordHash = hash
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// UpdateEmployee applies an allow-listed update to an employee.
func (s *EmployeeService) UpdateEmployee(employeeID, organizationID uint64, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindInOrganization(employeeID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		employee.Name = *input.Name
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != employee.Email {
			if _, err := s.employeeRepo.FindByOrgEmail(organizationID, email); err == nil {
				return nil, ErrEmployeeEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check employee email: %w", err)
			}
			employee.Email = email
		}
	}
	if input.Role != nil && strings.TrimSpace(*input.Role) != "" {
		employee.Role = *input.Role
	}
	if input.Department != nil && strings.TrimSpace(*input.Department) != "" {
		employee.Department = *input.Department
	}
	if input.Skills != nil {
		employee.Skills = *input.Skills
	}
	if input.WalletAddress != nil {
		employee.WalletAddress = *input.WalletAddress
	}
	if input.Status != nil {
		if !models.ValidEmployeeStatus(*input.Status) {
			return nil, ErrInvalidEmployeeStatus
		}
		employee.Status = *input.Status
	}
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		employee.PasswordHash = hash
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee, nil
}

// DeleteEmployee removes an employee
func (s *EmployeeService) DeleteEmployee(employeeID, organizationID uint64) error {
	if err := s.employeeRepo.Delete(employeeID, organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// Login authenticates an employee for the portal. Inactive accounts and
// accounts without a password are rejected before the hash comparison.
func (s *EmployeeService) Login(email, password string) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if employee.Status == models.EmployeeStatusInactive {
		return nil, ErrEmployeeInactive
	}
	if employee.PasswordHash == "" {
		return nil, ErrNoPasswordSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return employee, nil
}

// GetPortalEmployee returns an employee for the portal "me" view
func (s *EmployeeService) GetPortalEmployee(employeeID, organizationID uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindInOrganization(employeeID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hash), nil
}
