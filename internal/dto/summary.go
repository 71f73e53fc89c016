package dto

// ProjectSummaryRow is one row of GET /summary/projects: every task joined
// to its project and assignee, sorted by (project_name, title).
type ProjectSummaryRow struct {
	ID           string `bson:"_id" json:"id"`
	ProjectName  string `bson:"project_name" json:"project_name"`
	Title        string `bson:"title" json:"title"`
	Status       string `bson:"status" json:"status"`
	AssigneeName string `bson:"assignee_name" json:"assignee_name"`
}

// UserSummaryRow is one row of GET /summary/user/:user_id.
type UserSummaryRow struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	ProjectName string `bson:"project_name" json:"project_name"`
}
