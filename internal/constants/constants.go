package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyOrgID      = "organization_id"
	ContextKeyEmployeeID = "employee_id"
	ContextKeyRequestID  = "request_id"
)

// Token subject types embedded in JWT claims.
const (
	TokenTypeOrganization = "organization"
	TokenTypeEmployee     = "employee"
)

// Password rules.
const (
	MinPasswordLength = 8
)

// Pagination limits.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
