package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ai-hrms/hr-management-api/internal/dto"
)

type AuthHandlerTestSuite struct {
	HandlerTestSuite
}

func (suite *AuthHandlerTestSuite) TestRegister() {
	w := suite.request(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Globex",
		"email":    "admin@globex.com",
		"password": "super-secret",
		"industry": "Manufacturing",
		"size":     "11-50",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AuthResponse
	suite.decode(w, &resp)
	suite.NotEmpty(resp.Token)
	suite.Equal("Globex", resp.Organization.Name)
	suite.Equal("admin@globex.com", resp.Organization.Email)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	w := suite.request(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Globex",
		"email":    "admin@globex.com",
		"password": "short",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	w := suite.request(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Acme Again",
		"email":    suite.org.Email,
		"password": "super-secret",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_InvalidSize() {
	w := suite.request(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Globex",
		"email":    "admin@globex.com",
		"password": "super-secret",
		"size":     "huge",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin() {
	w := suite.request(http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    suite.org.Email,
		"password": "admin-password",
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AuthResponse
	suite.decode(w, &resp)
	suite.NotEmpty(resp.Token)
	suite.Equal(suite.org.ID, resp.Organization.ID)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	w := suite.request(http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    suite.org.Email,
		"password": "wrong",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_MissingFields() {
	w := suite.request(http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": suite.org.Email,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMe() {
	w := suite.request(http.MethodGet, "/api/auth/me", suite.orgToken(), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Org dto.OrganizationDTO `json:"org"`
	}
	suite.decode(w, &resp)
	suite.Equal(suite.org.ID, resp.Org.ID)
}

func (suite *AuthHandlerTestSuite) TestMe_NoToken() {
	w := suite.request(http.MethodGet, "/api/auth/me", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMe_EmployeeTokenRejected() {
	emp := suite.createEmployee("alice", nil)
	w := suite.request(http.MethodGet, "/api/auth/me", suite.employeeToken(emp), nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
