package domain

// ProjectStatus indicates the lifecycle state of a construction project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
)

// Project represents a construction project tracked by the dashboard.
// The fund ledger only needs the identity and name; the rest of the
// project record is managed by the project CRUD collaborators.
type Project struct {
	ProjectID  string        `json:"projectID"`
	Name       string        `json:"name"`
	ClientName string        `json:"clientName"`
	Location   string        `json:"location"`
	Status     ProjectStatus `json:"status"`
	AuditFields
}
