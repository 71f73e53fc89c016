package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/repository"
	"github.com/dsmirnova/task-tracker/internal/services"
)

// TaskHandlerTestSuite defines the test suite for the task and summary
// endpoints, running the full stack over an in-memory store.
type TaskHandlerTestSuite struct {
	suite.Suite
	store  *repository.MemoryStore
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.store = repository.NewMemoryStore()

	userRepo := suite.store.Users()
	projectRepo := suite.store.Projects()
	taskRepo := suite.store.Tasks()

	resolver := services.NewResolver(userRepo, projectRepo)
	userHandler := NewUserHandler(services.NewUserService(userRepo))
	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo, taskRepo, resolver))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, userRepo, projectRepo, resolver))
	summaryHandler := NewSummaryHandler(services.NewSummaryService(taskRepo))

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.router.GET("/users", userHandler.ListUsers)
	suite.router.POST("/users", userHandler.CreateUser)
	suite.router.PUT("/users", userHandler.UpdateUser)
	suite.router.DELETE("/users", userHandler.DeleteUser)
	suite.router.GET("/projects", projectHandler.ListProjects)
	suite.router.POST("/projects", projectHandler.CreateProject)
	suite.router.PUT("/projects", projectHandler.UpdateProject)
	suite.router.DELETE("/projects", projectHandler.DeleteProject)
	suite.router.GET("/tasks", taskHandler.ListTasks)
	suite.router.POST("/tasks", taskHandler.CreateTask)
	suite.router.PUT("/tasks", taskHandler.UpdateTask)
	suite.router.DELETE("/tasks", taskHandler.DeleteTask)
	suite.router.GET("/tasks/:task_id", taskHandler.GetTask)
	suite.router.GET("/summary/projects", summaryHandler.ProjectSummary)
	suite.router.GET("/summary/user/:user_id", summaryHandler.UserSummary)
}

// do performs a request with an optional JSON body and returns the recorder
func (suite *TaskHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

// createUser creates a user over the API and returns its id
func (suite *TaskHandlerTestSuite) createUser(username, fullName string) string {
	w := suite.do(http.MethodPost, "/users", gin.H{
		"username":  username,
		"full_name": fullName,
		"role":      "dev",
		"email":     username + "@example.com",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	suite.decode(w, &resp)
	return resp.ID
}

// createProject creates a project over the API and returns its id
func (suite *TaskHandlerTestSuite) createProject(name string, members ...string) string {
	if members == nil {
		members = []string{}
	}
	w := suite.do(http.MethodPost, "/projects", gin.H{"name": name, "members": members})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	suite.decode(w, &resp)
	return resp.ID
}

func (suite *TaskHandlerTestSuite) TestCreateAndListTaskThenCascadeDelete() {
	suite.createUser("alice", "Alice A")
	projectID := suite.createProject("P1", "alice")

	w := suite.do(http.MethodPost, "/tasks", gin.H{
		"title":         "T1",
		"assignee_name": "alice",
		"project_name":  "P1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodGet, "/tasks", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var views []dto.TaskView
	suite.decode(w, &views)
	suite.Require().Len(views, 1)
	suite.Equal("T1", views[0].Title)
	suite.Equal("Alice A", views[0].AssigneeName)
	suite.Equal("P1", views[0].ProjectName)
	suite.Equal("New", views[0].Status)
	suite.Equal("Medium", views[0].Priority)

	// Deleting the project removes its tasks.
	w = suite.do(http.MethodDelete, "/projects?project_id="+projectID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp map[string]string
	suite.decode(w, &resp)
	suite.Equal("P1", resp["project_name"])
	suite.Equal(projectID, resp["project_id"])

	w = suite.do(http.MethodGet, "/tasks", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &views)
	suite.Empty(views)
}

func (suite *TaskHandlerTestSuite) TestListTasksUnmatchedFilterReturnsEmptyList() {
	w := suite.do(http.MethodGet, "/tasks?status=Done", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("[]", w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestGetTaskInvalidIDFormat() {
	w := suite.do(http.MethodGet, "/tasks/not-an-id", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTaskNotFound() {
	w := suite.do(http.MethodGet, "/tasks/64b0c8f2a4d3e1f6b7a89c01", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTaskUnknownProject() {
	suite.createUser("alice", "Alice A")

	w := suite.do(http.MethodPost, "/tasks", gin.H{
		"title":         "T1",
		"assignee_name": "alice",
		"project_name":  "Nope",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Nope")
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskEmptyPayload() {
	suite.createUser("alice", "Alice A")
	suite.createProject("P1")

	w := suite.do(http.MethodPost, "/tasks", gin.H{
		"title":         "T1",
		"assignee_name": "alice",
		"project_name":  "P1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.TaskView
	suite.decode(w, &created)

	w = suite.do(http.MethodPut, "/tasks?task_id="+created.ID, gin.H{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskPartialFields() {
	suite.createUser("alice", "Alice A")
	suite.createProject("P1")

	w := suite.do(http.MethodPost, "/tasks", gin.H{
		"title":         "T1",
		"assignee_name": "alice",
		"project_name":  "P1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.TaskView
	suite.decode(w, &created)

	w = suite.do(http.MethodPut, "/tasks?task_id="+created.ID, gin.H{"status": "Done"})
	suite.Require().Equal(http.StatusOK, w.Code)

	var updated dto.TaskView
	suite.decode(w, &updated)
	suite.Equal("Done", updated.Status)
	suite.Equal("T1", updated.Title)
	suite.Equal("Alice A", updated.AssigneeName)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	suite.createUser("alice", "Alice A")
	suite.createProject("P1")

	w := suite.do(http.MethodPost, "/tasks", gin.H{
		"title":         "T1",
		"assignee_name": "alice",
		"project_name":  "P1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.TaskView
	suite.decode(w, &created)

	w = suite.do(http.MethodDelete, "/tasks?task_id="+created.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, "/tasks?task_id="+created.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodDelete, "/tasks?task_id=garbage", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestProjectSummarySorted() {
	suite.createUser("alice", "Alice A")
	suite.createProject("Beta")
	suite.createProject("Alpha")

	for _, tc := range []struct{ title, project string }{
		{"Z task", "Beta"},
		{"A task", "Beta"},
		{"M task", "Alpha"},
	} {
		w := suite.do(http.MethodPost, "/tasks", gin.H{
			"title":         tc.title,
			"assignee_name": "alice",
			"project_name":  tc.project,
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.do(http.MethodGet, "/summary/projects", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var rows []dto.ProjectSummaryRow
	suite.decode(w, &rows)
	suite.Require().Len(rows, 3)

	got := make([]string, len(rows))
	for i, row := range rows {
		got[i] = fmt.Sprintf("%s/%s", row.ProjectName, row.Title)
		suite.Equal("Alice A", row.AssigneeName)
	}
	suite.Equal([]string{"Alpha/M task", "Beta/A task", "Beta/Z task"}, got)
}

func (suite *TaskHandlerTestSuite) TestUserSummaryMalformedIDReturnsEmptyList() {
	w := suite.do(http.MethodGet, "/summary/user/not-an-id", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("[]", w.Body.String())
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
