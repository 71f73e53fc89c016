package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dsmirnova/task-tracker/internal/database"
	"github.com/dsmirnova/task-tracker/internal/dto"
	"github.com/dsmirnova/task-tracker/internal/models"
)

// MongoTaskRepository is a Mongo implementation of TaskRepository
type MongoTaskRepository struct {
	db *mongo.Database
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *mongo.Database) TaskRepository {
	return &MongoTaskRepository{db: db}
}

func (r *MongoTaskRepository) collection() *mongo.Collection {
	return r.db.Collection(database.TasksCollection)
}

// List returns tasks matching the filter
func (r *MongoTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.Priority != nil {
		query["priority"] = *filter.Priority
	}
	if filter.Assignee != nil {
		query["assignee"] = *filter.Assignee
	}

	cursor, err := r.collection().Find(ctx, query)
	if err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task by its internal reference
func (r *MongoTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Create inserts a task and fills in the generated ID
func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	result, err := r.collection().InsertOne(ctx, task)
	if err != nil {
		return err
	}
	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Update overwrites the given fields; returns the modified count
func (r *MongoTaskRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// Delete removes a task; returns the deleted count
func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByProject removes every task referencing the project
func (r *MongoTaskRepository) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	result, err := r.collection().DeleteMany(ctx, bson.M{"project": projectID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// lookupStage joins a local reference field against another collection, the
// left-outer way: a task with a dangling reference survives with an empty
// joined array.
func lookupStage(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func firstElem(path string) bson.D {
	return bson.D{{Key: "$arrayElemAt", Value: bson.A{path, 0}}}
}

var summarySort = bson.D{{Key: "$sort", Value: bson.D{
	{Key: "project_name", Value: 1},
	{Key: "title", Value: 1},
}}}

// ProjectSummary joins every task to its project and assignee
func (r *MongoTaskRepository) ProjectSummary(ctx context.Context) ([]dto.ProjectSummaryRow, error) {
	pipeline := mongo.Pipeline{
		lookupStage(database.ProjectsCollection, "project", "project_doc"),
		lookupStage(database.UsersCollection, "assignee", "user_doc"),
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "project_name", Value: firstElem("$project_doc.name")},
			{Key: "title", Value: 1},
			{Key: "status", Value: 1},
			{Key: "assignee_name", Value: firstElem("$user_doc.full_name")},
		}}},
		summarySort,
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	rows := []dto.ProjectSummaryRow{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UserSummary joins the user's tasks to their projects
func (r *MongoTaskRepository) UserSummary(ctx context.Context, userID primitive.ObjectID) ([]dto.UserSummaryRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "assignee", Value: userID}}}},
		lookupStage(database.ProjectsCollection, "project", "project_doc"),
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "title", Value: 1},
			{Key: "project_name", Value: firstElem("$project_doc.name")},
		}}},
		summarySort,
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	rows := []dto.UserSummaryRow{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
