package handlers

import (
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

// ReportHandlerTestSuite defines the test suite for ReportHandler
type ReportHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ReportHandler
	manager *models.User
}

// SetupTest runs before each test
func (suite *ReportHandlerTestSuite) SetupTest() {
	var err error

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
	// No summary service configured in tests
	suite.handler = NewReportHandler(services.NewReportService(taskRepo, userRepo), nil)

	suite.manager = &models.User{
		Name:         "mallory",
		Email:        "mallory@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleManager,
	}
	suite.db.Create(suite.manager)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ReportHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ReportHandlerTestSuite) createEmployee(name string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleEmployee,
	}
	suite.db.Create(user)
	return user
}

func (suite *ReportHandlerTestSuite) createTask(owner *models.User, text string, status models.TaskStatus) *models.Task {
	task := &models.Task{
		OwnerID: owner.ID,
		Text:    text,
		Status:  status,
	}
	suite.db.Create(task)
	return task
}

func (suite *ReportHandlerTestSuite) backdateTask(task *models.Task, at time.Time) {
	err := suite.db.Model(task).UpdateColumns(map[string]interface{}{
		"created_at": at,
		"updated_at": at,
	}).Error
	suite.Require().NoError(err)
}

func (suite *ReportHandlerTestSuite) createManagerContext(method, url string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, url, nil)
	c.Set("user_id", suite.manager.ID)
	c.Set("current_user", *suite.manager)
	return c, w
}

func (suite *ReportHandlerTestSuite) TestTeamBoard_RosterComplete() {
	alice := suite.createEmployee("alice")
	suite.createEmployee("bob")

	suite.createTask(alice, "ship feature", models.TaskStatusCompleted)

	c, w := suite.createManagerContext("GET", "/api/tasks/team")

	suite.handler.TeamBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Team []dto.EmployeeRowDTO `json:"team"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Team, 2, "one row per employee, managers excluded")

	// alice reported today, so she sorts first and bob is flagged missing
	assert.Equal(suite.T(), "alice", response.Team[0].User.Name)
	assert.False(suite.T(), response.Team[0].IsMissing)
	suite.Require().Len(response.Team[0].Completed, 1)

	assert.Equal(suite.T(), "bob", response.Team[1].User.Name)
	assert.True(suite.T(), response.Team[1].IsMissing)
	assert.Nil(suite.T(), response.Team[1].LastActivity)
}

func (suite *ReportHandlerTestSuite) TestTeamBoard_OldTaskDoesNotCount() {
	alice := suite.createEmployee("alice")

	task := suite.createTask(alice, "stale work", models.TaskStatusPending)
	suite.backdateTask(task, time.Now().AddDate(0, 0, -3))

	c, w := suite.createManagerContext("GET", "/api/tasks/team")

	suite.handler.TeamBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Team []dto.EmployeeRowDTO `json:"team"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Team, 1)
	assert.True(suite.T(), response.Team[0].IsMissing)
	assert.Empty(suite.T(), response.Team[0].Pending, "tasks not touched today stay off the board")
}

func (suite *ReportHandlerTestSuite) TestTeamBoard_RepliedTaskSurfaces() {
	alice := suite.createEmployee("alice")

	task := suite.createTask(alice, "needs follow-up", models.TaskStatusPending)
	task.ManagerReply = "any update?"
	suite.db.Save(task)
	suite.backdateTask(task, time.Now().AddDate(0, 0, -3))

	c, w := suite.createManagerContext("GET", "/api/tasks/team")

	suite.handler.TeamBoard(c)

	var response struct {
		Team []dto.EmployeeRowDTO `json:"team"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Team, 1)

	row := response.Team[0]
	suite.Require().Len(row.Pending, 1, "replied tasks surface regardless of age")
	assert.Equal(suite.T(), "any update?", row.Pending[0].ManagerReply)
	assert.True(suite.T(), row.IsMissing, "an old replied task is not a report for today")
}

func (suite *ReportHandlerTestSuite) TestPendingReport_RangeFilter() {
	alice := suite.createEmployee("alice")
	bob := suite.createEmployee("bob")

	recent := suite.createTask(alice, "recent pending", models.TaskStatusPending)
	suite.backdateTask(recent, time.Now().AddDate(0, 0, -3))

	blocked := suite.createTask(bob, "blocked", models.TaskStatusWaiting)
	blocked.BlockerReason = "waiting on infra"
	suite.db.Save(blocked)

	stale := suite.createTask(alice, "stale pending", models.TaskStatusPending)
	suite.backdateTask(stale, time.Now().AddDate(0, 0, -10))

	done := suite.createTask(alice, "already done", models.TaskStatusCompleted)
	_ = done

	c, w := suite.createManagerContext("GET", "/api/tasks/reports/pending")
	c.Request.URL.RawQuery = "range=week"

	suite.handler.PendingReport(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Report []dto.PendingGroupDTO `json:"report"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Report, 2)

	texts := map[string]string{}
	for _, group := range response.Report {
		for _, task := range group.Tasks {
			texts[task.Text] = task.Reason
		}
	}
	assert.Contains(suite.T(), texts, "recent pending")
	assert.Contains(suite.T(), texts, "blocked")
	assert.NotContains(suite.T(), texts, "stale pending", "outside the week window")
	assert.NotContains(suite.T(), texts, "already done", "completed work is not outstanding")
	assert.Equal(suite.T(), "waiting on infra", texts["blocked"])
	assert.Empty(suite.T(), texts["recent pending"])
}

func (suite *ReportHandlerTestSuite) TestPendingReport_EmptyTeam() {
	c, w := suite.createManagerContext("GET", "/api/tasks/reports/pending")

	suite.handler.PendingReport(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Report []dto.PendingGroupDTO `json:"report"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(suite.T(), response.Report)
}

func (suite *ReportHandlerTestSuite) TestSummarize_NotConfigured() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/reports/summary", nil)
	c.Set("user_id", suite.manager.ID)
	c.Set("current_user", *suite.manager)

	suite.handler.Summarize(c)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

func TestReportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
