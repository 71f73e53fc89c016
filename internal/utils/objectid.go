package utils

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID validates that raw is a well-formed ObjectID hex string and
// converts it. Called before every lookup by identifier so malformed ids
// never reach the store.
func ParseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// IsValidObjectID reports whether raw is a well-formed ObjectID hex string.
func IsValidObjectID(raw string) bool {
	_, err := primitive.ObjectIDFromHex(raw)
	return err == nil
}
