package models

import (
	"time"
)

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// ValidEmployeeStatus reports whether s is a known employee status.
func ValidEmployeeStatus(s EmployeeStatus) bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive
}

// Employee belongs to exactly one organization. Email is unique within
// the organization, not globally. ProductivityScore, TaskCompletionRate
// and AvgTaskTime are computed fields: only the productivity
// recalculator may write them.
type Employee struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;uniqueIndex:idx_employees_org_email" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Email          string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_employees_org_email" json:"email"`
	Role           string         `gorm:"type:varchar(100);not null" json:"role"`
	Department     string         `gorm:"type:varchar(100);not null" json:"department"`
	Skills         SkillList      `gorm:"type:text" json:"skills"`
	WalletAddress  string         `gorm:"type:varchar(100)" json:"wallet_address"`
	Status         EmployeeStatus `gorm:"type:varchar(20);not null" json:"status"`
	PasswordHash   string         `gorm:"type:varchar(255)" json:"-"`
	JoinedAt       time.Time      `json:"joined_at"`

	// Computed by the productivity recalculator.
	ProductivityScore  float64 `gorm:"not null;default:0" json:"productivity_score"`
	TaskCompletionRate float64 `gorm:"not null;default:0" json:"task_completion_rate"`
	AvgTaskTime        float64 `gorm:"not null;default:0" json:"avg_task_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Tasks        []Task       `gorm:"foreignKey:AssigneeID" json:"tasks,omitempty"`
}

// NewEmployee builds an employee with explicit defaults applied. Status
// defaults to active and the skill list is never nil.
func NewEmployee(orgID uint64, name, email, role, department string, skills SkillList, status EmployeeStatus) *Employee {
	if status == "" {
		status = EmployeeStatusActive
	}
	if skills == nil {
		skills = SkillList{}
	}
	return &Employee{
		OrganizationID: orgID,
		Name:           name,
		Email:          email,
		Role:           role,
		Department:     department,
		Skills:         skills,
		Status:         status,
		JoinedAt:       time.Now(),
	}
}
