package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered user. Username is the human-facing key used to
// resolve relationships; ID is the internal reference stored by other
// documents.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"full_name" json:"full_name"`
	Role     string             `bson:"role" json:"role"`
	Email    string             `bson:"email" json:"email"`
}
