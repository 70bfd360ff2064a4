package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ai-hrms/hr-management-api/internal/constants"
	apierrors "github.com/ai-hrms/hr-management-api/internal/errors"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

// RequireOrganizationAuth authenticates an organization admin via a
// bearer token and stores the tenant scope in the request context.
func RequireOrganizationAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, secret)
		if !ok {
			return
		}

		if claims.TokenType != constants.TokenTypeOrganization {
			apierrors.Forbidden(c, "Organization token required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrgID, claims.OrganizationID)
		c.Next()
	}
}

// RequireEmployeeAuth authenticates an employee portal token and stores
// both the employee and the tenant scope in the request context.
func RequireEmployeeAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, secret)
		if !ok {
			return
		}

		if claims.TokenType != constants.TokenTypeEmployee {
			apierrors.Forbidden(c, "Employee token required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrgID, claims.OrganizationID)
		c.Set(constants.ContextKeyEmployeeID, claims.EmployeeID)
		c.Next()
	}
}

func bearerClaims(c *gin.Context, secret string) (*utils.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		apierrors.Unauthorized(c, "No token provided")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		apierrors.Unauthorized(c, "Invalid authorization header")
		c.Abort()
		return nil, false
	}

	claims, err := utils.ValidateToken(parts[1], secret)
	if err != nil {
		apierrors.Unauthorized(c, "Invalid or expired token")
		c.Abort()
		return nil, false
	}

	return claims, true
}

// GetOrganizationID retrieves the authenticated tenant scope from context
func GetOrganizationID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyOrgID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}

// GetEmployeeID retrieves the authenticated employee from context
func GetEmployeeID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyEmployeeID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
