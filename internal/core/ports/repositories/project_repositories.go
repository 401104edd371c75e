package repositories

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	// FindProjectByID retrieves a project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects ordered by name.
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data.
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates an existing project's details.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
