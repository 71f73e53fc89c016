package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/models"
	"github.com/dsmirnova/task-tracker/internal/repository"
)

type taskServiceEnv struct {
	store    *repository.MemoryStore
	users    repository.UserRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	service  *TaskService
}

func setupTaskServiceEnv(t *testing.T) taskServiceEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	users := store.Users()
	projects := store.Projects()
	tasks := store.Tasks()
	resolver := NewResolver(users, projects)

	return taskServiceEnv{
		store:    store,
		users:    users,
		projects: projects,
		tasks:    tasks,
		service:  NewTaskService(tasks, users, projects, resolver),
	}
}

func (env taskServiceEnv) createUser(t *testing.T, username, fullName string) *models.User {
	t.Helper()
	user := &models.User{Username: username, FullName: fullName, Role: "dev", Email: username + "@example.com"}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

func (env taskServiceEnv) createProject(t *testing.T, name string, members ...primitive.ObjectID) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Members: members}
	require.NoError(t, env.projects.Create(context.Background(), project))
	return project
}

func TestCreateTask_ResolvesNamesAndAppliesDefaults(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice", "Alice A")
	project := env.createProject(t, "P1", user.ID)

	view, err := env.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title:        "T1",
		AssigneeName: "alice",
		ProjectName:  "P1",
	})
	require.NoError(t, err)

	assert.Equal(t, "T1", view.Title)
	assert.Equal(t, models.DefaultStatus, view.Status)
	assert.Equal(t, models.DefaultPriority, view.Priority)
	assert.Equal(t, user.ID.Hex(), view.Assignee)
	assert.Equal(t, project.ID.Hex(), view.Project)
	assert.Equal(t, "Alice A", view.AssigneeName)
	assert.Equal(t, "P1", view.ProjectName)
	require.NotNil(t, view.CreatedAt)
}

func TestCreateTask_UnknownAssigneeFailsBeforeWrite(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	env.createProject(t, "P1")

	_, err := env.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title:        "T1",
		AssigneeName: "ghost",
		ProjectName:  "P1",
	})

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, "user", resolveErr.Kind)
	assert.Equal(t, "ghost", resolveErr.Name)

	tasks, err := env.tasks.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListTasks_FiltersAreANDCombined(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice", "Alice A")
	env.createUser(t, "bob", "Bob B")
	env.createProject(t, "P1")

	mustCreate := func(title, status, priority, assignee string) {
		_, err := env.service.CreateTask(ctx, dto.CreateTaskRequest{
			Title: title, Status: status, Priority: priority,
			AssigneeName: assignee, ProjectName: "P1",
		})
		require.NoError(t, err)
	}
	mustCreate("T1", "Done", "High", "alice")
	mustCreate("T2", "Done", "Low", "alice")
	mustCreate("T3", "New", "High", "bob")

	views, err := env.service.ListTasks(ctx, ListTasksInput{Status: "Done", Priority: "High", Assignee: alice.ID.Hex()})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "T1", views[0].Title)

	// No task matches; empty list, not an error.
	views, err = env.service.ListTasks(ctx, ListTasksInput{Status: "Blocked"})
	require.NoError(t, err)
	assert.Empty(t, views)

	// A malformed assignee id is dropped from the filter, not rejected.
	views, err = env.service.ListTasks(ctx, ListTasksInput{Assignee: "not-an-id"})
	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestComposeTaskView_SubstitutesPlaceholdersForDanglingReferences(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice", "Alice A")
	project := env.createProject(t, "P1")

	task := &models.Task{Title: "T1", Status: "New", Priority: "Medium", Assignee: user.ID, Project: project.ID}
	require.NoError(t, env.tasks.Create(ctx, task))

	// Delete both referenced entities; the view must not fail.
	_, err := env.users.Delete(ctx, user.ID)
	require.NoError(t, err)
	_, err = env.projects.Delete(ctx, project.ID)
	require.NoError(t, err)

	view, err := env.service.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, UnknownAssignee, view.AssigneeName)
	assert.Equal(t, NoProject, view.ProjectName)
}

func TestUpdateTask_EmptyPayloadFailsWithoutStoreAccess(t *testing.T) {
	env := setupTaskServiceEnv(t)

	// Even for a nonexistent task the empty payload wins: InvalidInput,
	// not NotFound.
	_, err := env.service.UpdateTask(context.Background(), primitive.NewObjectID(), dto.UpdateTaskRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestUpdateTask_PartialUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "Alice A")
	env.createProject(t, "P1")
	created, err := env.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title: "T1", AssigneeName: "alice", ProjectName: "P1",
	})
	require.NoError(t, err)

	id, err := primitive.ObjectIDFromHex(created.ID)
	require.NoError(t, err)

	status := "Done"
	view, err := env.service.UpdateTask(ctx, id, dto.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Done", view.Status)
	assert.Equal(t, "T1", view.Title)
	assert.Equal(t, models.DefaultPriority, view.Priority)
	assert.Equal(t, "Alice A", view.AssigneeName)
}

func TestUpdateTask_ReresolvesAssigneeName(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "Alice A")
	bob := env.createUser(t, "bob", "Bob B")
	env.createProject(t, "P1")
	created, err := env.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title: "T1", AssigneeName: "alice", ProjectName: "P1",
	})
	require.NoError(t, err)

	id, err := primitive.ObjectIDFromHex(created.ID)
	require.NoError(t, err)

	assigneeName := "bob"
	view, err := env.service.UpdateTask(ctx, id, dto.UpdateTaskRequest{AssigneeName: &assigneeName})
	require.NoError(t, err)
	assert.Equal(t, bob.ID.Hex(), view.Assignee)
	assert.Equal(t, "Bob B", view.AssigneeName)

	// Unknown name fails the whole update.
	ghost := "ghost"
	_, err = env.service.UpdateTask(ctx, id, dto.UpdateTaskRequest{AssigneeName: &ghost})
	var resolveErr *ResolveError
	assert.ErrorAs(t, err, &resolveErr)
}

func TestUpdateTask_MissingAndUnchangedAreBothNotFound(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "Alice A")
	env.createProject(t, "P1")
	created, err := env.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title: "T1", AssigneeName: "alice", ProjectName: "P1",
	})
	require.NoError(t, err)

	title := "T1"
	_, err = env.service.UpdateTask(ctx, primitive.NewObjectID(), dto.UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Same-value update is indistinguishable from a missing task.
	id, err := primitive.ObjectIDFromHex(created.ID)
	require.NoError(t, err)
	_, err = env.service.UpdateTask(ctx, id, dto.UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	env := setupTaskServiceEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "Alice A")
	env.createProject(t, "P1")
	created, err := env.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title: "T1", AssigneeName: "alice", ProjectName: "P1",
	})
	require.NoError(t, err)

	id, err := primitive.ObjectIDFromHex(created.ID)
	require.NoError(t, err)
	require.NoError(t, env.service.DeleteTask(ctx, id))

	assert.ErrorIs(t, env.service.DeleteTask(ctx, id), ErrTaskNotFound)
}
