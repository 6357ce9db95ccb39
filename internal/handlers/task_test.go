package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/teampulse/daily-report-api/internal/database"
	"github.com/teampulse/daily-report-api/internal/dto"
	"github.com/teampulse/daily-report-api/internal/models"
	"github.com/teampulse/daily-report-api/internal/repository"
	"github.com/teampulse/daily-report-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.StatusSnapshot{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, userRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(name string, role models.UserRole) *models.User {
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(owner *models.User, text string, status models.TaskStatus) *models.Task {
	task := &models.Task{
		OwnerID: owner.ID,
		Text:    text,
		Status:  status,
	}
	suite.db.Create(task)
	return task
}

// backdateTask rewrites the store timestamps directly, bypassing GORM's
// auto-update of updated_at.
func (suite *TaskHandlerTestSuite) backdateTask(task *models.Task, createdAt, updatedAt time.Time) {
	err := suite.db.Model(task).UpdateColumns(map[string]interface{}{
		"created_at": createdAt,
		"updated_at": updatedAt,
	}).Error
	suite.Require().NoError(err)
}

func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// setTaskContext simulates RequireTaskAccess
func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task, actor models.User) {
	c.Set("task", task)
	c.Set("current_user", actor)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("alice", models.RoleEmployee)

	body, _ := json.Marshal(map[string]string{"text": "write release notes"})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "write release notes", response.Text)
	assert.Equal(suite.T(), models.TaskStatusPending, response.Status, "status defaults to pending")
	assert.Equal(suite.T(), user.ID, response.OwnerID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingText() {
	user := suite.createTestUser("alice", models.RoleEmployee)

	body, _ := json.Marshal(map[string]string{"status": "pending"})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_WithBlocker() {
	user := suite.createTestUser("alice", models.RoleEmployee)

	body, _ := json.Marshal(map[string]string{
		"text":           "fix bug",
		"status":         "waiting",
		"blocker_reason": "waiting on infra",
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.TaskStatusWaiting, response.Status)
	assert.Equal(suite.T(), "waiting on infra", response.BlockerReason)
}

func (suite *TaskHandlerTestSuite) TestListMyTasks_OnlyCreatedToday() {
	user := suite.createTestUser("alice", models.RoleEmployee)

	suite.createTestTask(user, "today's task", models.TaskStatusPending)

	old := suite.createTestTask(user, "yesterday's task", models.TaskStatusPending)
	yesterday := time.Now().AddDate(0, 0, -1)
	suite.backdateTask(old, yesterday, yesterday)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)

	suite.handler.ListMyTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 1)
	assert.Equal(suite.T(), "today's task", response.Tasks[0].Text)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_OwnerChangesStatus() {
	user := suite.createTestUser("alice", models.RoleEmployee)
	task := suite.createTestTask(user, "fix bug", models.TaskStatusPending)

	body, _ := json.Marshal(map[string]string{"status": "completed"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, user.ID)
	suite.setTaskContext(c, *task, *user)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.TaskStatusCompleted, response.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidStatusRejected() {
	user := suite.createTestUser("alice", models.RoleEmployee)
	task := suite.createTestTask(user, "fix bug", models.TaskStatusPending)

	body, _ := json.Marshal(map[string]string{"status": "archived"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, user.ID)
	suite.setTaskContext(c, *task, *user)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ManagerReplyStampsTimestamp() {
	user := suite.createTestUser("alice", models.RoleEmployee)
	manager := suite.createTestUser("mallory", models.RoleManager)
	task := suite.createTestTask(user, "fix bug", models.TaskStatusPending)

	body, _ := json.Marshal(map[string]string{"manager_reply": "any update?"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, manager.ID)
	suite.setTaskContext(c, *task, *manager)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "any update?", response.ManagerReply)
	suite.Require().NotNil(response.ManagerReplyAt, "reply timestamp is stamped server-side")
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_EmployeeCannotWriteReply() {
	user := suite.createTestUser("alice", models.RoleEmployee)
	task := suite.createTestTask(user, "fix bug", models.TaskStatusPending)

	body, _ := json.Marshal(map[string]string{"manager_reply": "self-praise"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, user.ID)
	suite.setTaskContext(c, *task, *user)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ManagerCannotEditText() {
	user := suite.createTestUser("alice", models.RoleEmployee)
	manager := suite.createTestUser("mallory", models.RoleManager)
	task := suite.createTestTask(user, "fix bug", models.TaskStatusPending)

	body, _ := json.Marshal(map[string]string{"text": "rewritten by manager"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, manager.ID)
	suite.setTaskContext(c, *task, *manager)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Owner() {
	user := suite.createTestUser("alice", models.RoleEmployee)
	task := suite.createTestTask(user, "fix bug", models.TaskStatusPending)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotOwner() {
	owner := suite.createTestUser("alice", models.RoleEmployee)
	other := suite.createTestUser("bob", models.RoleEmployee)
	suite.createTestTask(owner, "fix bug", models.TaskStatusPending)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	user := suite.createTestUser("alice", models.RoleEmployee)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/42", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestMyHistory_GroupsByDay() {
	user := suite.createTestUser("alice", models.RoleEmployee)

	suite.createTestTask(user, "today done", models.TaskStatusCompleted)

	old := suite.createTestTask(user, "old pending", models.TaskStatusPending)
	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	suite.backdateTask(old, twoDaysAgo, twoDaysAgo)

	c, w := suite.createAuthContext("GET", "/api/tasks/history", nil, user.ID)

	suite.handler.MyHistory(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		History []struct {
			Date      time.Time `json:"date"`
			Completed []any     `json:"completed"`
			Pending   []any     `json:"pending"`
		} `json:"history"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.History, 2)

	// Most recent day first
	assert.Len(suite.T(), response.History[0].Completed, 1)
	assert.Len(suite.T(), response.History[1].Pending, 1)
	assert.True(suite.T(), response.History[0].Date.After(response.History[1].Date))
}

func (suite *TaskHandlerTestSuite) TestAssignTask_Success() {
	manager := suite.createTestUser("mallory", models.RoleManager)
	employee := suite.createTestUser("alice", models.RoleEmployee)

	body, _ := json.Marshal(map[string]interface{}{
		"text":     "prepare demo",
		"user_id":  employee.ID,
		"deadline": "Friday noon",
	})
	c, w := suite.createAuthContext("POST", "/api/tasks/assign", body, manager.ID)
	c.Set("current_user", *manager)

	suite.handler.AssignTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), employee.ID, response.OwnerID)
	assert.True(suite.T(), response.IsAssigned)
	suite.Require().NotNil(response.AssignedByID)
	assert.Equal(suite.T(), manager.ID, *response.AssignedByID)
	assert.Equal(suite.T(), "Friday noon", response.Deadline)
	assert.Equal(suite.T(), models.TaskStatusPending, response.Status)
}

func (suite *TaskHandlerTestSuite) TestAssignTask_UnknownTarget() {
	manager := suite.createTestUser("mallory", models.RoleManager)

	body, _ := json.Marshal(map[string]interface{}{
		"text":    "prepare demo",
		"user_id": 999,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks/assign", body, manager.ID)
	c.Set("current_user", *manager)

	suite.handler.AssignTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestEmployeeHistory_RangeFilter() {
	employee := suite.createTestUser("alice", models.RoleEmployee)
	manager := suite.createTestUser("mallory", models.RoleManager)

	recent := suite.createTestTask(employee, "recent", models.TaskStatusPending)
	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	suite.backdateTask(recent, threeDaysAgo, threeDaysAgo)

	stale := suite.createTestTask(employee, "stale", models.TaskStatusPending)
	tenDaysAgo := time.Now().AddDate(0, 0, -10)
	suite.backdateTask(stale, tenDaysAgo, tenDaysAgo)

	c, w := suite.createAuthContext("GET", "/api/tasks/user/1/history", nil, manager.ID)
	c.Params = gin.Params{{Key: "userId", Value: "1"}}
	c.Request.URL.RawQuery = "range=week"

	suite.handler.EmployeeHistory(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		History []struct {
			Pending []struct {
				Text string `json:"text"`
			} `json:"pending"`
		} `json:"history"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.History, 1)
	suite.Require().Len(response.History[0].Pending, 1)
	assert.Equal(suite.T(), "recent", response.History[0].Pending[0].Text)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
