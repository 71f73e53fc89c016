package dto

// CreateProjectRequest is the body of POST /projects and PUT /projects.
// Members are usernames; each is resolved to a user reference before the
// project is written. Updates replace the whole member list.
type CreateProjectRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members"`
}
