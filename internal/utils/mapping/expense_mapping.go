package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/models"
)

// ToModelExpense converts a domain Expense to its model, serializing the
// payment sources audit list to jsonb.
func ToModelExpense(d domain.Expense) (models.Expense, error) {
	var sources []byte
	if len(d.PaymentSources) > 0 {
		var err error
		sources, err = json.Marshal(d.PaymentSources)
		if err != nil {
			return models.Expense{}, fmt.Errorf("failed to marshal payment sources for expense %s: %w", d.ExpenseID, err)
		}
	}
	return models.Expense{
		ExpenseID:           d.ExpenseID,
		ProjectID:           d.ProjectID,
		Description:         d.Description,
		Category:            d.Category,
		TotalAmount:         d.TotalAmount,
		ExpenseDate:         d.Date,
		ExpenseType:         models.ExpenseType(d.ExpenseType),
		PaidViaCrossProject: d.PaidViaCrossProject,
		PaymentSources:      sources,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainExpense converts a model Expense to its domain form.
func ToDomainExpense(m models.Expense) (domain.Expense, error) {
	var sources []domain.PaymentSource
	if len(m.PaymentSources) > 0 {
		if err := json.Unmarshal(m.PaymentSources, &sources); err != nil {
			return domain.Expense{}, fmt.Errorf("failed to unmarshal payment sources for expense %s: %w", m.ExpenseID, err)
		}
	}
	return domain.Expense{
		ExpenseID:           m.ExpenseID,
		ProjectID:           m.ProjectID,
		Description:         m.Description,
		Category:            m.Category,
		TotalAmount:         m.TotalAmount,
		Date:                m.ExpenseDate,
		ExpenseType:         domain.ExpenseType(m.ExpenseType),
		PaidViaCrossProject: m.PaidViaCrossProject,
		PaymentSources:      sources,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}, nil
}
