package models

// ProjectStatus mirrors domain.ProjectStatus at the storage layer.
type ProjectStatus string

// Project represents a row in the projects table.
type Project struct {
	ProjectID  string        `db:"project_id"`
	Name       string        `db:"name"`
	ClientName string        `db:"client_name"`
	Location   string        `db:"location"`
	Status     ProjectStatus `db:"status"`
	AuditFields
}
