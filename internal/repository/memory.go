package repository

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/models"
)

// MemoryStore is an in-memory implementation of the three repositories.
// It mirrors the Mongo semantics the services depend on, including the
// "modified count is zero when nothing changed" behavior of UpdateOne,
// so tests exercise the same code paths as the real store.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	projects map[primitive.ObjectID]models.Project
	tasks    map[primitive.ObjectID]models.Task
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[primitive.ObjectID]models.User{},
		projects: map[primitive.ObjectID]models.Project{},
		tasks:    map[primitive.ObjectID]models.Task{},
	}
}

// Users returns the UserRepository view of the store.
func (s *MemoryStore) Users() UserRepository { return &memoryUsers{s} }

// Projects returns the ProjectRepository view of the store.
func (s *MemoryStore) Projects() ProjectRepository { return &memoryProjects{s} }

// Tasks returns the TaskRepository view of the store.
func (s *MemoryStore) Tasks() TaskRepository { return &memoryTasks{s} }

type memoryUsers struct{ s *MemoryStore }

func (r *memoryUsers) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID.Hex() < users[j].ID.Hex() })
	return users, nil
}

func (r *memoryUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return 0, nil
	}

	updated := user
	for key, value := range fields {
		switch key {
		case "username":
			updated.Username = value.(string)
		case "full_name":
			updated.FullName = value.(string)
		case "role":
			updated.Role = value.(string)
		case "email":
			updated.Email = value.(string)
		}
	}
	if reflect.DeepEqual(user, updated) {
		return 0, nil
	}
	r.s.users[id] = updated
	return 1, nil
}

func (r *memoryUsers) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return 0, nil
	}
	delete(r.s.users, id)
	return 1, nil
}

type memoryProjects struct{ s *MemoryStore }

func (r *memoryProjects) List(ctx context.Context) ([]models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	projects := make([]models.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID.Hex() < projects[j].ID.Hex() })
	return projects, nil
}

func (r *memoryProjects) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	project, ok := r.s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &project, nil
}

func (r *memoryProjects) FindByName(ctx context.Context, name string) (*models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.projects {
		if p.Name == name {
			project := p
			return &project, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProjects) Create(ctx context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	r.s.projects[project.ID] = *project
	return nil
}

func (r *memoryProjects) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	project, ok := r.s.projects[id]
	if !ok {
		return 0, nil
	}

	updated := project
	for key, value := range fields {
		switch key {
		case "name":
			updated.Name = value.(string)
		case "members":
			updated.Members = value.([]primitive.ObjectID)
		}
	}
	if reflect.DeepEqual(project, updated) {
		return 0, nil
	}
	r.s.projects[id] = updated
	return 1, nil
}

func (r *memoryProjects) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return 0, nil
	}
	delete(r.s.projects, id)
	return 1, nil
}

type memoryTasks struct{ s *MemoryStore }

func (r *memoryTasks) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := []models.Task{}
	for _, t := range r.s.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.Assignee != nil && t.Assignee != *filter.Assignee {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID.Hex() < tasks[j].ID.Hex() })
	return tasks, nil
}

func (r *memoryTasks) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (r *memoryTasks) Create(ctx context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	r.s.tasks[task.ID] = *task
	return nil
}

func (r *memoryTasks) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return 0, nil
	}

	updated := task
	for key, value := range fields {
		switch key {
		case "title":
			updated.Title = value.(string)
		case "status":
			updated.Status = value.(string)
		case "priority":
			updated.Priority = value.(string)
		case "assignee":
			updated.Assignee = value.(primitive.ObjectID)
		case "project":
			updated.Project = value.(primitive.ObjectID)
		}
	}
	if reflect.DeepEqual(task, updated) {
		return 0, nil
	}
	r.s.tasks[id] = updated
	return 1, nil
}

func (r *memoryTasks) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return 0, nil
	}
	delete(r.s.tasks, id)
	return 1, nil
}

func (r *memoryTasks) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, t := range r.s.tasks {
		if t.Project == projectID {
			delete(r.s.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryTasks) ProjectSummary(ctx context.Context) ([]dto.ProjectSummaryRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := []dto.ProjectSummaryRow{}
	for _, t := range r.s.tasks {
		row := dto.ProjectSummaryRow{
			ID:     t.ID.Hex(),
			Title:  t.Title,
			Status: t.Status,
		}
		if p, ok := r.s.projects[t.Project]; ok {
			row.ProjectName = p.Name
		}
		if u, ok := r.s.users[t.Assignee]; ok {
			row.AssigneeName = u.FullName
		}
		rows = append(rows, row)
	}
	sortSummary(rows, func(row dto.ProjectSummaryRow) (string, string) {
		return row.ProjectName, row.Title
	})
	return rows, nil
}

func (r *memoryTasks) UserSummary(ctx context.Context, userID primitive.ObjectID) ([]dto.UserSummaryRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := []dto.UserSummaryRow{}
	for _, t := range r.s.tasks {
		if t.Assignee != userID {
			continue
		}
		row := dto.UserSummaryRow{
			ID:    t.ID.Hex(),
			Title: t.Title,
		}
		if p, ok := r.s.projects[t.Project]; ok {
			row.ProjectName = p.Name
		}
		rows = append(rows, row)
	}
	sortSummary(rows, func(row dto.UserSummaryRow) (string, string) {
		return row.ProjectName, row.Title
	})
	return rows, nil
}

// sortSummary orders rows by (project_name, title) ascending with ordinal
// string comparison, matching the store's $sort.
func sortSummary[T any](rows []T, key func(T) (string, string)) {
	sort.SliceStable(rows, func(i, j int) bool {
		pi, ti := key(rows[i])
		pj, tj := key(rows[j])
		if c := strings.Compare(pi, pj); c != 0 {
			return c < 0
		}
		return strings.Compare(ti, tj) < 0
	})
}
