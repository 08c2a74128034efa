package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadildr/tasktrack-api/internal/auth"
	"github.com/fadildr/tasktrack-api/internal/database"
	"github.com/fadildr/tasktrack-api/internal/dto"
	"github.com/fadildr/tasktrack-api/internal/middleware"
	"github.com/fadildr/tasktrack-api/internal/models"
	"github.com/fadildr/tasktrack-api/internal/repository"
	"github.com/fadildr/tasktrack-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *auth.TokenService
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	suite.tokens = auth.NewTokenService("test-secret")
	userRepo := repository.NewUserRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, userRepo)
	handler := NewTaskHandler(taskService)

	suite.router = newTestRouter()
	tasks := suite.router.Group("/api/tasks")
	tasks.Use(middleware.RequireAuth(suite.tokens))
	{
		tasks.GET("", handler.ListTasks)
		tasks.POST("", middleware.RequireLead(), handler.CreateTask)
		tasks.PUT("", middleware.RequireLead(), handler.UpdateTask)
	}
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TaskHandlerTestSuite) createTestUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Email:        email,
		Name:         "User " + email,
		PasswordHash: "hashedpassword",
		Role:         role,
		RoleID:       role.ID(),
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, creatorID uint64, status models.TaskStatus) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Status:      status,
		CreatedByID: creatorID,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskHandlerTestSuite) doRequest(method, url string, body any, user *models.User) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		encoded, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(encoded))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	if user != nil {
		token, err := suite.tokens.Issue(*user)
		suite.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) countLogs(taskID uint64) int64 {
	var count int64
	suite.db.Model(&models.ActivityLog{}).Where("task_id = ?", taskID).Count(&count)
	return count
}

// TestCreateTask_Success tests that a created task defaults to
// NOT_STARTED and carries the assigned user's id and name
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)
	member := suite.createTestUser("member@example.com", models.RoleMember)

	w := suite.doRequest("POST", "/api/tasks", gin.H{
		"title":          "Fix bug",
		"description":    "desc",
		"createdById":    lead.ID,
		"assignedUserId": member.ID,
	}, lead)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response struct {
		Data dto.TaskDTO `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Fix bug", response.Data.Title)
	assert.Equal(suite.T(), models.TaskStatusNotStarted, response.Data.Status)
	suite.Require().NotNil(response.Data.AssignedUser)
	assert.Equal(suite.T(), member.ID, response.Data.AssignedUser.ID)
	assert.Equal(suite.T(), member.Name, response.Data.AssignedUser.Name)
}

// TestCreateTask_MissingFields tests validation of required fields
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingFields() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)

	w := suite.doRequest("POST", "/api/tasks", gin.H{
		"title": "No description",
	}, lead)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_AssigneeNotFound tests referencing a missing user
func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeNotFound() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)

	w := suite.doRequest("POST", "/api/tasks", gin.H{
		"title":          "Fix bug",
		"description":    "desc",
		"createdById":    lead.ID,
		"assignedUserId": 9999,
	}, lead)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_MemberForbidden tests that only leads can create tasks
func (suite *TaskHandlerTestSuite) TestCreateTask_MemberForbidden() {
	member := suite.createTestUser("member@example.com", models.RoleMember)

	w := suite.doRequest("POST", "/api/tasks", gin.H{
		"title":       "Fix bug",
		"description": "desc",
		"createdById": member.ID,
	}, member)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestListTasks_Unauthorized tests listing without a token
func (suite *TaskHandlerTestSuite) TestListTasks_Unauthorized() {
	w := suite.doRequest("GET", "/api/tasks", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestListTasks_Filters tests search and status filtering combined
func (suite *TaskHandlerTestSuite) TestListTasks_Filters() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)
	other := suite.createTestUser("other@example.com", models.RoleLead)

	suite.createTestTask("Fix login bug", lead.ID, models.TaskStatusOnProgress)
	suite.createTestTask("Fix logout bug", lead.ID, models.TaskStatusDone)
	suite.createTestTask("Write docs", other.ID, models.TaskStatusOnProgress)

	// Case-insensitive search over title/description, ANDed with status
	w := suite.doRequest("GET", "/api/tasks?search=FIX&status=ON_PROGRESS", nil, lead)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Data dto.TaskListResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Data.Tasks, 1)
	assert.Equal(suite.T(), "Fix login bug", response.Data.Tasks[0].Title)
	assert.Equal(suite.T(), int64(1), response.Data.Meta.Total)

	// Creator filter
	w = suite.doRequest("GET", fmt.Sprintf("/api/tasks?createdById=%d", other.ID), nil, lead)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Data.Tasks, 1)
	assert.Equal(suite.T(), "Write docs", response.Data.Tasks[0].Title)

	// Unfiltered listing matches all records
	w = suite.doRequest("GET", "/api/tasks?status=all", nil, lead)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), int64(3), response.Data.Meta.Total)
}

// TestListTasks_InvalidStatus tests rejection of unknown status values
func (suite *TaskHandlerTestSuite) TestListTasks_InvalidStatus() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)

	w := suite.doRequest("GET", "/api/tasks?status=BOGUS", nil, lead)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_Pagination tests that concatenating all pages
// reproduces the full sorted result set exactly once per item
func (suite *TaskHandlerTestSuite) TestListTasks_Pagination() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)
	for i := 1; i <= 7; i++ {
		suite.createTestTask(fmt.Sprintf("Task %02d", i), lead.ID, models.TaskStatusNotStarted)
	}

	seen := map[uint64]int{}
	var pages int
	for page := 1; ; page++ {
		w := suite.doRequest("GET", fmt.Sprintf("/api/tasks?page=%d&limit=3&sortBy=title&sortOrder=asc", page), nil, lead)
		suite.Require().Equal(http.StatusOK, w.Code)

		var response struct {
			Data dto.TaskListResponse `json:"data"`
		}
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(suite.T(), int64(7), response.Data.Meta.Total)
		assert.Equal(suite.T(), 3, response.Data.Meta.TotalPages)

		for _, task := range response.Data.Tasks {
			seen[task.ID]++
		}

		pages = response.Data.Meta.TotalPages
		if page >= pages {
			break
		}
	}

	assert.Len(suite.T(), seen, 7)
	for id, count := range seen {
		assert.Equalf(suite.T(), 1, count, "task %d appeared %d times", id, count)
	}
}

// TestUpdateTask_SingleFieldDiff tests that changing one field appends
// exactly one activity log entry with matching before/after values
func (suite *TaskHandlerTestSuite) TestUpdateTask_SingleFieldDiff() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)
	task := suite.createTestTask("Fix bug", lead.ID, models.TaskStatusOnProgress)

	w := suite.doRequest("PUT", "/api/tasks", gin.H{
		"id":     task.ID,
		"status": "DONE",
		"userId": lead.ID,
	}, lead)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Data dto.TaskDTO `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.TaskStatusDone, response.Data.Status)

	var logs []models.ActivityLog
	suite.db.Where("task_id = ?", task.ID).Find(&logs)
	suite.Require().Len(logs, 1)
	assert.Equal(suite.T(), "status", logs[0].Field)
	suite.Require().NotNil(logs[0].BeforeValue)
	suite.Require().NotNil(logs[0].AfterValue)
	assert.Equal(suite.T(), "ON_PROGRESS", *logs[0].BeforeValue)
	assert.Equal(suite.T(), "DONE", *logs[0].AfterValue)
	assert.Equal(suite.T(), lead.ID, logs[0].UserID)
}

// TestUpdateTask_NoChanges tests that a no-op update appends nothing
func (suite *TaskHandlerTestSuite) TestUpdateTask_NoChanges() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)
	task := suite.createTestTask("Fix bug", lead.ID, models.TaskStatusOnProgress)

	w := suite.doRequest("PUT", "/api/tasks", gin.H{
		"id":          task.ID,
		"title":       "Fix bug",
		"description": "Test Description",
		"status":      "ON_PROGRESS",
		"userId":      lead.ID,
	}, lead)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), int64(0), suite.countLogs(task.ID))

	var reloaded models.Task
	suite.db.First(&reloaded, task.ID)
	assert.Equal(suite.T(), "Fix bug", reloaded.Title)
	assert.Equal(suite.T(), models.TaskStatusOnProgress, reloaded.Status)
}

// TestUpdateTask_MultipleFields tests one log entry per changed field
func (suite *TaskHandlerTestSuite) TestUpdateTask_MultipleFields() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)
	member := suite.createTestUser("member@example.com", models.RoleMember)
	task := suite.createTestTask("Fix bug", lead.ID, models.TaskStatusNotStarted)

	w := suite.doRequest("PUT", "/api/tasks", gin.H{
		"id":             task.ID,
		"title":          "Fix bug properly",
		"status":         "ON_PROGRESS",
		"assignedUserId": member.ID,
		"userId":         lead.ID,
	}, lead)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), int64(3), suite.countLogs(task.ID))

	var fields []string
	suite.db.Model(&models.ActivityLog{}).Where("task_id = ?", task.ID).Order("field").Pluck("field", &fields)
	assert.Equal(suite.T(), []string{"assignedUserId", "status", "title"}, fields)
}

// TestUpdateTask_NotFound tests updating a missing task
func (suite *TaskHandlerTestSuite) TestUpdateTask_NotFound() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)

	w := suite.doRequest("PUT", "/api/tasks", gin.H{
		"id":     9999,
		"status": "DONE",
		"userId": lead.ID,
	}, lead)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateTask_MissingID tests that the task ID is required
func (suite *TaskHandlerTestSuite) TestUpdateTask_MissingID() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)

	w := suite.doRequest("PUT", "/api/tasks", gin.H{
		"status": "DONE",
		"userId": lead.ID,
	}, lead)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_ActivityLogsIncluded tests that listed tasks carry
// their activity history, newest entry first
func (suite *TaskHandlerTestSuite) TestListTasks_ActivityLogsIncluded() {
	lead := suite.createTestUser("lead@example.com", models.RoleLead)
	task := suite.createTestTask("Fix bug", lead.ID, models.TaskStatusNotStarted)

	for _, status := range []string{"ON_PROGRESS", "DONE"} {
		w := suite.doRequest("PUT", "/api/tasks", gin.H{
			"id":     task.ID,
			"status": status,
			"userId": lead.ID,
		}, lead)
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	w := suite.doRequest("GET", "/api/tasks", nil, lead)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Data dto.TaskListResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Data.Tasks, 1)

	logs := response.Data.Tasks[0].ActivityLogs
	suite.Require().Len(logs, 2)
	assert.Equal(suite.T(), lead.ID, logs[0].User.ID)
	assert.Equal(suite.T(), lead.Name, logs[0].User.Name)
	suite.Require().True(!logs[0].UpdatedAt.Before(logs[1].UpdatedAt))
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
