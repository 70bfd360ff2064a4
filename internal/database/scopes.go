package database

import (
	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OrganizationScope restricts a query to a single tenant. Every read and
// write the services issue goes through this or an explicit
// organization_id predicate.
func OrganizationScope(orgID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", orgID)
	}
}
