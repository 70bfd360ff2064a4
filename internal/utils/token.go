package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ai-hrms/hr-management-api/internal/constants"
)

const tokenLifetime = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims carries the authenticated principal. TokenType distinguishes
// organization admin tokens from employee portal tokens.
type Claims struct {
	OrganizationID uint64 `json:"organization_id"`
	EmployeeID     uint64 `json:"employee_id,omitempty"`
	TokenType      string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateOrganizationToken signs a JWT for an organization admin.
func GenerateOrganizationToken(orgID uint64, secret string) (string, error) {
	claims := Claims{
		OrganizationID: orgID,
		TokenType:      constants.TokenTypeOrganization,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateEmployeeToken signs a JWT for an employee portal session.
func GenerateEmployeeToken(employeeID, orgID uint64, secret string) (string, error) {
	claims := Claims{
		OrganizationID: orgID,
		EmployeeID:     employeeID,
		TokenType:      constants.TokenTypeEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a signed token.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
