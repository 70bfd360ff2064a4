package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/middleware"
	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
	"github.com/ai-hrms/hr-management-api/internal/services"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

const testJWTSecret = "test-secret"

// HandlerTestSuite wires the full router over an in-memory database so
// handler tests go through the real middleware chain.
type HandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	org    *models.Organization
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Organization{},
		&models.Employee{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.router = buildTestRouter(suite.db)

	suite.org = suite.createOrganization("Acme", "acme@example.com")
}

func (suite *HandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// buildTestRouter mirrors the route wiring in cmd/server.
func buildTestRouter(db *gorm.DB) *gin.Engine {
	orgRepo := repository.NewOrganizationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(orgRepo)
	employeeService := services.NewEmployeeService(employeeRepo, taskRepo)
	productivityService := services.NewProductivityService(employeeRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, employeeRepo, productivityService)
	intelligenceService := services.NewIntelligenceService(employeeRepo, taskRepo)
	dashboardService := services.NewDashboardService(employeeRepo, taskRepo)

	authHandler := NewAuthHandler(authService, testJWTSecret)
	employeeHandler := NewEmployeeHandler(employeeService)
	taskHandler := NewTaskHandler(taskService)
	employeeAuthHandler := NewEmployeeAuthHandler(employeeService, taskService, testJWTSecret)
	intelligenceHandler := NewIntelligenceHandler(intelligenceService, productivityService, nil)
	dashboardHandler := NewDashboardHandler(dashboardService)

	r := gin.New()
	r.Use(middleware.RequestID())

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.RequireOrganizationAuth(testJWTSecret), authHandler.Me)

	empAuth := api.Group("/employee-auth")
	empAuth.POST("/login", employeeAuthHandler.Login)
	portal := empAuth.Group("")
	portal.Use(middleware.RequireEmployeeAuth(testJWTSecret))
	portal.GET("/me", employeeAuthHandler.Me)
	portal.GET("/my-tasks", employeeAuthHandler.MyTasks)
	portal.PUT("/my-tasks/:id", employeeAuthHandler.UpdateMyTask)

	admin := api.Group("")
	admin.Use(middleware.RequireOrganizationAuth(testJWTSecret))
	admin.GET("/employees", employeeHandler.ListEmployees)
	admin.POST("/employees", employeeHandler.CreateEmployee)
	admin.GET("/employees/:id", employeeHandler.GetEmployee)
	admin.PUT("/employees/:id", employeeHandler.UpdateEmployee)
	admin.DELETE("/employees/:id", employeeHandler.DeleteEmployee)
	admin.GET("/tasks", taskHandler.ListTasks)
	admin.POST("/tasks", taskHandler.CreateTask)
	admin.GET("/tasks/:id", taskHandler.GetTask)
	admin.PUT("/tasks/:id", taskHandler.UpdateTask)
	admin.DELETE("/tasks/:id", taskHandler.DeleteTask)
	admin.GET("/ai/assign/:id", intelligenceHandler.Recommend)
	admin.POST("/ai/recalculate-scores", intelligenceHandler.RecalculateScores)
	admin.GET("/dashboard", dashboardHandler.GetDashboard)

	return r
}

func (suite *HandlerTestSuite) createOrganization(name, email string) *models.Organization {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	suite.Require().NoError(err)

	org := &models.Organization{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Size:         models.SizeMicro,
	}
	suite.Require().NoError(suite.db.Create(org).Error)
	return org
}

func (suite *HandlerTestSuite) orgToken() string {
	token, err := utils.GenerateOrganizationToken(suite.org.ID, testJWTSecret)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) employeeToken(emp *models.Employee) string {
	token, err := utils.GenerateEmployeeToken(emp.ID, emp.OrganizationID, testJWTSecret)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) createEmployee(name string, skills models.SkillList) *models.Employee {
	emp := models.NewEmployee(suite.org.ID, name, name+"@example.com", "Engineer", "Engineering", skills, models.EmployeeStatusActive)
	suite.Require().NoError(suite.db.Create(emp).Error)
	return emp
}

func (suite *HandlerTestSuite) createTask(title string, status models.TaskStatus, assigneeID *uint64) *models.Task {
	task := models.NewTask(suite.org.ID, title, "", models.PriorityMedium, nil, nil)
	task.Status = status
	task.AssigneeID = assigneeID
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer credential.
func (suite *HandlerTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}
