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

// MongoUserRepository is a Mongo implementation of UserRepository
type MongoUserRepository struct {
	db *mongo.Database
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{db: db}
}

func (r *MongoUserRepository) collection() *mongo.Collection {
	return r.db.Collection(database.UsersCollection)
}

// List returns all users
func (r *MongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID finds a user by its internal reference
func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by the human-facing key
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection().FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user and fills in the generated ID
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	result, err := r.collection().InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Update overwrites the given fields; returns the modified count
func (r *MongoUserRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// Delete removes a user; returns the deleted count
func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
