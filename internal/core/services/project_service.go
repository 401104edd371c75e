package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// projectService provides the minimal project registry the ledger depends on.
type projectService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject persists a new project in ACTIVE state.
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, userID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:  uuid.NewString(),
		Name:       req.Name,
		ClientName: req.ClientName,
		Location:   req.Location,
		Status:     domain.ProjectActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		logger.Error("Failed to create project", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	logger.Info("Project created", slog.String("project_id", project.ProjectID), slog.String("name", project.Name))
	return &project, nil
}

// GetProjectByID retrieves a project by its ID.
func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

// ListProjects retrieves all projects.
func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.ListProjects(ctx)
}
