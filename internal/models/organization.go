package models

import (
	"time"
)

type OrganizationSize string

const (
	SizeMicro  OrganizationSize = "1-10"
	SizeSmall  OrganizationSize = "11-50"
	SizeMedium OrganizationSize = "51-200"
	SizeLarge  OrganizationSize = "201-500"
	SizeXLarge OrganizationSize = "500+"
)

// ValidOrganizationSize reports whether s is one of the supported size buckets.
func ValidOrganizationSize(s OrganizationSize) bool {
	switch s {
	case SizeMicro, SizeSmall, SizeMedium, SizeLarge, SizeXLarge:
		return true
	}
	return false
}

// Organization is the tenant boundary. Every employee and task belongs to
// exactly one organization and no query may cross that boundary.
type Organization struct {
	ID            uint64           `gorm:"primarykey" json:"id"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	Email         string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string           `gorm:"type:varchar(255);not null" json:"-"`
	Industry      string           `gorm:"type:varchar(100)" json:"industry"`
	Size          OrganizationSize `gorm:"type:varchar(20);not null;default:'1-10'" json:"size"`
	WalletAddress string           `gorm:"type:varchar(100)" json:"wallet_address"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Relations
	Employees []Employee `gorm:"foreignKey:OrganizationID" json:"employees,omitempty"`
	Tasks     []Task     `gorm:"foreignKey:OrganizationID" json:"tasks,omitempty"`
}
