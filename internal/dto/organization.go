package dto

import (
	"github.com/ai-hrms/hr-management-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID       uint64                  `json:"id"`
	Name     string                  `json:"name"`
	Email    string                  `json:"email"`
	Industry string                  `json:"industry"`
	Size     models.OrganizationSize `json:"size"`
}

// AuthResponse is returned by organization register and login
type AuthResponse struct {
	Token        string          `json:"token"`
	Organization OrganizationDTO `json:"org"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:       org.ID,
		Name:     org.Name,
		Email:    org.Email,
		Industry: org.Industry,
		Size:     org.Size,
	}
}
