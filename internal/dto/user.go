package dto

// CreateUserRequest is the body of POST /users. The same shape is used
// for PUT /users, which replaces every field.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required"`
}
