package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
)

type EmployeeServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *EmployeeService
	org     *models.Organization
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Organization{},
		&models.Employee{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	employeeRepo := repository.NewEmployeeRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	suite.service = NewEmployeeService(employeeRepo, taskRepo)

	suite.org = &models.Organization{
		Name:         "Acme",
		Email:        "acme@example.com",
		PasswordHash: "hashed",
		Size:         models.SizeMicro,
	}
	suite.Require().NoError(suite.db.Create(suite.org).Error)
}

func (suite *EmployeeServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *EmployeeServiceTestSuite) validInput() CreateEmployeeInput {
	return CreateEmployeeInput{
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       "Engineer",
		Department: "Engineering",
		Skills:     models.SkillList{"Go", "SQL"},
	}
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee() {
	emp, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)

	suite.NotZero(emp.ID)
	suite.Equal(models.EmployeeStatusActive, emp.Status)
	suite.Equal("alice@example.com", emp.Email)
	suite.Empty(emp.PasswordHash)
	suite.Equal(0.0, emp.ProductivityScore)
	suite.False(emp.JoinedAt.IsZero())
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_LowercasesEmail() {
	input := suite.validInput()
	input.Email = "  Alice@Example.COM "

	emp, err := suite.service.CreateEmployee(suite.org.ID, input)
	suite.Require().NoError(err)
	suite.Equal("alice@example.com", emp.Email)
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_MissingFields() {
	input := suite.validInput()
	input.Department = " "

	_, err := suite.service.CreateEmployee(suite.org.ID, input)
	suite.ErrorIs(err, ErrEmployeeFieldsMissing)
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_DuplicateEmailInOrganization() {
	_, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)

	input := suite.validInput()
	input.Email = "ALICE@example.com"
	_, err = suite.service.CreateEmployee(suite.org.ID, input)
	suite.ErrorIs(err, ErrEmployeeEmailTaken)
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_SameEmailInAnotherOrganization() {
	other := &models.Organization{
		Name:         "Rival",
		Email:        "rival@example.com",
		PasswordHash: "hashed",
		Size:         models.SizeMicro,
	}
	suite.Require().NoError(suite.db.Create(other).Error)

	_, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)

	_, err = suite.service.CreateEmployee(other.ID, suite.validInput())
	suite.NoError(err)
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_PasswordIsHashed() {
	input := suite.validInput()
	input.Password = "portal-secret"

	emp, err := suite.service.CreateEmployee(suite.org.ID, input)
	suite.Require().NoError(err)
	suite.NotEmpty(emp.PasswordHash)
	suite.NotEqual("portal-secret", emp.PasswordHash)
}

func (suite *EmployeeServiceTestSuite) TestUpdateEmployee_CannotTouchComputedScores() {
	emp, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.Model(emp).Update("productivity_score", 77.7).Error)

	name := "Alice B."
	updated, err := suite.service.UpdateEmployee(emp.ID, suite.org.ID, UpdateEmployeeInput{Name: &name})
	suite.Require().NoError(err)

	suite.Equal("Alice B.", updated.Name)
	suite.Equal(77.7, updated.ProductivityScore)
}

func (suite *EmployeeServiceTestSuite) TestUpdateEmployee_InvalidStatus() {
	emp, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)

	status := models.EmployeeStatus("retired")
	_, err = suite.service.UpdateEmployee(emp.ID, suite.org.ID, UpdateEmployeeInput{Status: &status})
	suite.ErrorIs(err, ErrInvalidEmployeeStatus)
}

func (suite *EmployeeServiceTestSuite) TestDeleteEmployee_NotFound() {
	err := suite.service.DeleteEmployee(9999, suite.org.ID)
	suite.ErrorIs(err, ErrEmployeeNotFound)
}

func (suite *EmployeeServiceTestSuite) TestDeleteEmployee_ScopedToOrganization() {
	emp, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)

	other := &models.Organization{
		Name:         "Rival",
		Email:        "rival@example.com",
		PasswordHash: "hashed",
		Size:         models.SizeMicro,
	}
	suite.Require().NoError(suite.db.Create(other).Error)

	err = suite.service.DeleteEmployee(emp.ID, other.ID)
	suite.ErrorIs(err, ErrEmployeeNotFound)
}

func (suite *EmployeeServiceTestSuite) TestLogin() {
	input := suite.validInput()
	input.Password = "portal-secret"
	created, err := suite.service.CreateEmployee(suite.org.ID, input)
	suite.Require().NoError(err)

	emp, err := suite.service.Login("Alice@example.com", "portal-secret")
	suite.Require().NoError(err)
	suite.Equal(created.ID, emp.ID)
}

func (suite *EmployeeServiceTestSuite) TestLogin_WrongPassword() {
	input := suite.validInput()
	input.Password = "portal-secret"
	_, err := suite.service.CreateEmployee(suite.org.ID, input)
	suite.Require().NoError(err)

	_, err = suite.service.Login("alice@example.com", "not-it")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *EmployeeServiceTestSuite) TestLogin_UnknownEmail() {
	_, err := suite.service.Login("ghost@example.com", "whatever")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *EmployeeServiceTestSuite) TestLogin_InactiveAccount() {
	input := suite.validInput()
	input.Password = "portal-secret"
	input.Status = models.EmployeeStatusInactive
	_, err := suite.service.CreateEmployee(suite.org.ID, input)
	suite.Require().NoError(err)

	_, err = suite.service.Login("alice@example.com", "portal-secret")
	suite.ErrorIs(err, ErrEmployeeInactive)
}

func (suite *EmployeeServiceTestSuite) TestLogin_NoPasswordSet() {
	_, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)

	_, err = suite.service.Login("alice@example.com", "portal-secret")
	suite.ErrorIs(err, ErrNoPasswordSet)
}

func (suite *EmployeeServiceTestSuite) TestGetEmployee_IncludesTaskHistory() {
	emp, err := suite.service.CreateEmployee(suite.org.ID, suite.validInput())
	suite.Require().NoError(err)

	task := models.NewTask(suite.org.ID, "work item", "", models.PriorityMedium, nil, nil)
	task.AssigneeID = &emp.ID
	task.Status = models.TaskStatusAssigned
	suite.Require().NoError(suite.db.Create(task).Error)

	got, tasks, err := suite.service.GetEmployee(emp.ID, suite.org.ID)
	suite.Require().NoError(err)
	suite.Equal(emp.ID, got.ID)
	suite.Require().Len(tasks, 1)
	suite.Equal(task.ID, tasks[0].ID)
}

func TestEmployeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}
