package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dsmirnova/task-tracker/internal/config"
)

// Collection names
const (
	UsersCollection    = "users"
	ProjectsCollection = "projects"
	TasksCollection    = "tasks"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect establishes the process-wide Mongo connection and verifies it
// with a ping. The client is shared by all request handlers.
func Connect(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to reach mongodb at %s: %w", cfg.MongoURI, err)
	}

	db = client.Database(cfg.MongoDB)

	log.Println("Database connection established")
	return nil
}

// Disconnect tears down the shared connection at process shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func GetDB() *mongo.Database {
	return db
}

// SetDB sets the database instance (used for testing)
func SetDB(d *mongo.Database) {
	db = d
}
