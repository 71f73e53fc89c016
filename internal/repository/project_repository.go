package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dsmirnova/task-tracker/internal/database"
	"github.com/dsmirnova/task-tracker/internal/models"
)

// MongoProjectRepository is a Mongo implementation of ProjectRepository
type MongoProjectRepository struct {
	db *mongo.Database
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *mongo.Database) ProjectRepository {
	return &MongoProjectRepository{db: db}
}

func (r *MongoProjectRepository) collection() *mongo.Collection {
	return r.db.Collection(database.ProjectsCollection)
}

// List returns all projects
func (r *MongoProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByID finds a project by its internal reference
func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByName finds a project by the human-facing key
func (r *MongoProjectRepository) FindByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.collection().FindOne(ctx, bson.M{"name": name}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create inserts a project and fills in the generated ID
func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	result, err := r.collection().InsertOne(ctx, project)
	if err != nil {
		return err
	}
	project.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Update overwrites the given fields; returns the modified count
func (r *MongoProjectRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// Delete removes a project; returns the deleted count
func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
