package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	"github.com/buildsite/fundledger/internal/models"
	"github.com/buildsite/fundledger/internal/utils/mapping"
)

type PgxProjectRepository struct {
	pool *pgxpool.Pool
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{pool: pool}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

// SaveProject inserts a new project.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	modelProject := mapping.ToModelProject(project)

	query := `
		INSERT INTO projects (project_id, name, client_name, location, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		modelProject.ProjectID,
		modelProject.Name,
		modelProject.ClientName,
		modelProject.Location,
		modelProject.Status,
		modelProject.CreatedAt,
		modelProject.CreatedBy,
		modelProject.LastUpdatedAt,
		modelProject.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: project with ID %s already exists", apperrors.ErrDuplicate, modelProject.ProjectID)
		}
		return fmt.Errorf("failed to save project %s: %w", modelProject.ProjectID, err)
	}
	return nil
}

// FindProjectByID retrieves a project by its ID.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
		SELECT project_id, name, client_name, location, status, created_at, created_by, last_updated_at, last_updated_by
		FROM projects
		WHERE project_id = $1;
	`
	var modelProject models.Project
	err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&modelProject.ProjectID,
		&modelProject.Name,
		&modelProject.ClientName,
		&modelProject.Location,
		&modelProject.Status,
		&modelProject.CreatedAt,
		&modelProject.CreatedBy,
		&modelProject.LastUpdatedAt,
		&modelProject.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	domainProject := mapping.ToDomainProject(modelProject)
	return &domainProject, nil
}

// ListProjects retrieves all projects ordered by name.
func (r *PgxProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	query := `
		SELECT project_id, name, client_name, location, status, created_at, created_by, last_updated_at, last_updated_by
		FROM projects
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	modelProjects := []models.Project{}
	for rows.Next() {
		var modelProject models.Project
		err := rows.Scan(
			&modelProject.ProjectID,
			&modelProject.Name,
			&modelProject.ClientName,
			&modelProject.Location,
			&modelProject.Status,
			&modelProject.CreatedAt,
			&modelProject.CreatedBy,
			&modelProject.LastUpdatedAt,
			&modelProject.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		modelProjects = append(modelProjects, modelProject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return mapping.ToDomainProjectSlice(modelProjects), nil
}

// UpdateProject updates an existing project's editable fields.
func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	modelProject := mapping.ToModelProject(project)

	query := `
		UPDATE projects
		SET name = $2, client_name = $3, location = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE project_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelProject.ProjectID,
		modelProject.Name,
		modelProject.ClientName,
		modelProject.Location,
		modelProject.Status,
		modelProject.LastUpdatedAt,
		modelProject.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update project %s: %w", modelProject.ProjectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
