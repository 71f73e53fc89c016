package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status and priority are free-form strings; these are only the defaults
// applied when a create request omits them.
const (
	DefaultStatus   = "New"
	DefaultPriority = "Medium"
)

// Task references exactly one assignee (user) and one project by ObjectID.
// CreatedAt is set server-side once, at creation.
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Status    string             `bson:"status" json:"status"`
	Priority  string             `bson:"priority" json:"priority"`
	Assignee  primitive.ObjectID `bson:"assignee" json:"assignee"`
	Project   primitive.ObjectID `bson:"project" json:"project"`
	CreatedAt *time.Time         `bson:"created_at,omitempty" json:"created_at"`
}
