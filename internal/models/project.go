package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project groups tasks and holds references to its member users. Members
// are stored as user ObjectIDs, never as embedded copies; input payloads
// carry usernames which are resolved at write time.
type Project struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name    string               `bson:"name" json:"name"`
	Members []primitive.ObjectID `bson:"members" json:"members"`
}
