package dto

import (
	"github.com/ai-hrms/hr-management-api/internal/models"
)

// PortalEmployeeDTO is the employee view returned by portal login
type PortalEmployeeDTO struct {
	ID                uint64           `json:"id"`
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	Role              string           `json:"role"`
	Department        string           `json:"department"`
	Skills            models.SkillList `json:"skills"`
	ProductivityScore float64          `json:"productivity_score"`
}

// EmployeeAuthResponse is returned by employee portal login
type EmployeeAuthResponse struct {
	Token    string            `json:"token"`
	Employee PortalEmployeeDTO `json:"employee"`
}

// EmployeeDetailDTO is an employee together with their task history
type EmployeeDetailDTO struct {
	models.Employee
	Tasks []models.Task `json:"tasks"`
}

// ToPortalEmployeeDTO converts an Employee model to PortalEmployeeDTO
func ToPortalEmployeeDTO(emp models.Employee) PortalEmployeeDTO {
	return PortalEmployeeDTO{
		ID:                emp.ID,
		Name:              emp.Name,
		Email:             emp.Email,
		Role:              emp.Role,
		Department:        emp.Department,
		Skills:            emp.Skills,
		ProductivityScore: emp.ProductivityScore,
	}
}
