package mapping

import (
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/models"
)

// ToModelProject converts a domain Project to its model.
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		ClientName:  d.ClientName,
		Location:    d.Location,
		Status:      models.ProjectStatus(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to its domain form.
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		ClientName:  m.ClientName,
		Location:    m.Location,
		Status:      domain.ProjectStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model projects.
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}
