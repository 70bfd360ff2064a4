package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/utils"
)

type TaskHandlerTestSuite struct {
	HandlerTestSuite
}

type taskListResponse struct {
	Tasks      []models.Task            `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func (suite *TaskHandlerTestSuite) TestListTasks() {
	suite.createTask("one", models.TaskStatusUnassigned, nil)
	suite.createTask("two", models.TaskStatusUnassigned, nil)

	w := suite.request(http.MethodGet, "/api/tasks", suite.orgToken(), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp taskListResponse
	suite.decode(w, &resp)
	suite.Len(resp.Tasks, 2)
	suite.Equal(int64(2), resp.Pagination.Total)
	suite.Equal(1, resp.Pagination.Page)
}

func (suite *TaskHandlerTestSuite) TestListTasks_StatusFilter() {
	emp := suite.createEmployee("alice", nil)
	suite.createTask("open", models.TaskStatusUnassigned, nil)
	suite.createTask("running", models.TaskStatusInProgress, &emp.ID)

	w := suite.request(http.MethodGet, "/api/tasks?status=in_progress", suite.orgToken(), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp taskListResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Tasks, 1)
	suite.Equal("running", resp.Tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Paginated() {
	for i := 0; i < 3; i++ {
		suite.createTask(fmt.Sprintf("task-%d", i), models.TaskStatusUnassigned, nil)
	}

	w := suite.request(http.MethodGet, "/api/tasks?page=2&limit=2", suite.orgToken(), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp taskListResponse
	suite.decode(w, &resp)
	suite.Len(resp.Tasks, 1)
	suite.Equal(int64(3), resp.Pagination.Total)
	suite.Equal(2, resp.Pagination.Page)
	suite.Equal(2, resp.Pagination.Limit)
}

func (suite *TaskHandlerTestSuite) TestListTasks_InvalidStatusFilter() {
	w := suite.request(http.MethodGet, "/api/tasks?status=bogus", suite.orgToken(), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_RequiresAuth() {
	w := suite.request(http.MethodGet, "/api/tasks", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	w := suite.request(http.MethodPost, "/api/tasks", suite.orgToken(), map[string]interface{}{
		"title":           "Ship the feature",
		"description":     "End to end",
		"priority":        "high",
		"required_skills": []string{"go", "sql"},
	})

	suite.Equal(http.StatusCreated, w.Code)

	var task models.Task
	suite.decode(w, &task)
	suite.NotZero(task.ID)
	suite.Equal(models.TaskStatusUnassigned, task.Status)
	suite.Equal(models.PriorityHigh, task.Priority)
	suite.Equal(models.SkillList{"go", "sql"}, task.RequiredSkills)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_PreAssigned() {
	emp := suite.createEmployee("alice", nil)

	w := suite.request(http.MethodPost, "/api/tasks", suite.orgToken(), map[string]interface{}{
		"title":       "Ship the feature",
		"assignee_id": emp.ID,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var task models.Task
	suite.decode(w, &task)
	suite.Equal(models.TaskStatusAssigned, task.Status)
	suite.Require().NotNil(task.AssigneeID)
	suite.Equal(emp.ID, *task.AssigneeID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeFromOtherOrganization() {
	other := suite.createOrganization("Rival", "rival@example.com")
	outsider := models.NewEmployee(other.ID, "mallory", "mallory@example.com", "Engineer", "Engineering", nil, models.EmployeeStatusActive)
	suite.Require().NoError(suite.db.Create(outsider).Error)

	w := suite.request(http.MethodPost, "/api/tasks", suite.orgToken(), map[string]interface{}{
		"title":       "Ship the feature",
		"assignee_id": outsider.ID,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	w := suite.request(http.MethodPost, "/api/tasks", suite.orgToken(), map[string]interface{}{
		"description": "no title",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	emp := suite.createEmployee("alice", nil)
	task := suite.createTask("work item", models.TaskStatusAssigned, &emp.ID)

	w := suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), suite.orgToken(), nil)

	suite.Equal(http.StatusOK, w.Code)

	var got models.Task
	suite.decode(w, &got)
	suite.Equal(task.ID, got.ID)
	suite.Require().NotNil(got.Assignee)
	suite.Equal(emp.ID, got.Assignee.ID)
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	w := suite.request(http.MethodGet, "/api/tasks/9999", suite.orgToken(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_Complete() {
	emp := suite.createEmployee("alice", nil)
	task := suite.createTask("work item", models.TaskStatusInProgress, &emp.ID)

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), suite.orgToken(), map[string]interface{}{
		"status": "completed",
	})

	suite.Equal(http.StatusOK, w.Code)

	var got models.Task
	suite.decode(w, &got)
	suite.Equal(models.TaskStatusCompleted, got.Status)
	suite.NotNil(got.CompletedAt)

	// Completion refreshes the assignee's metrics.
	var refreshed models.Employee
	suite.Require().NoError(suite.db.First(&refreshed, emp.ID).Error)
	suite.Equal(100.0, refreshed.TaskCompletionRate)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_BackwardTransition() {
	emp := suite.createEmployee("alice", nil)
	task := suite.createTask("work item", models.TaskStatusCompleted, &emp.ID)

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), suite.orgToken(), map[string]interface{}{
		"status": "assigned",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	task := suite.createTask("work item", models.TaskStatusUnassigned, nil)

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), suite.orgToken(), nil)

	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_OtherOrganization() {
	other := suite.createOrganization("Rival", "rival@example.com")
	task := models.NewTask(other.ID, "their task", "", models.PriorityMedium, nil, nil)
	suite.Require().NoError(suite.db.Create(task).Error)

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), suite.orgToken(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
