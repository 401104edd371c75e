package services

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/dto"
)

// ProjectSvcFacade exposes the minimal project operations the fund ledger
// needs; full project management lives with the dashboard collaborators.
type ProjectSvcFacade interface {
	// CreateProject persists a new project.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, userID string) (*domain.Project, error)

	// GetProjectByID retrieves a project by its ID.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects.
	ListProjects(ctx context.Context) ([]domain.Project, error)
}
