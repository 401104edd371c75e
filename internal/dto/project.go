package dto

import (
	"time"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Name       string `json:"name" binding:"required"`
	ClientName string `json:"clientName"`
	Location   string `json:"location"`
}

// ProjectResponse mirrors domain.Project.
type ProjectResponse struct {
	ProjectID  string               `json:"projectID"`
	Name       string               `json:"name"`
	ClientName string               `json:"clientName"`
	Location   string               `json:"location"`
	Status     domain.ProjectStatus `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// ToProjectResponse converts a domain project to its response DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:  p.ProjectID,
		Name:       p.Name,
		ClientName: p.ClientName,
		Location:   p.Location,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}

// ToProjectResponses converts a slice of domain projects.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return res
}
