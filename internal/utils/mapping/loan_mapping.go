package mapping

import (
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/models"
)

// ToModelLoan converts a domain CrossProjectLoan to its model.
func ToModelLoan(d domain.CrossProjectLoan) models.CrossProjectLoan {
	return models.CrossProjectLoan{
		LoanID:             d.LoanID,
		LenderProjectID:    d.LenderProjectID,
		BorrowerProjectID:  d.BorrowerProjectID,
		Amount:             d.Amount,
		SettlementAmount:   d.SettlementAmount,
		ExpenseID:          d.ExpenseID,
		ExpenseType:        models.ExpenseType(d.ExpenseType),
		Description:        d.Description,
		LoanDate:           d.Date,
		Status:             models.LoanStatus(d.Status),
		SettledDate:        d.SettledDate,
		LastSettlementDate: d.LastSettlementDate,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model CrossProjectLoan to its domain form.
func ToDomainLoan(m models.CrossProjectLoan) domain.CrossProjectLoan {
	return domain.CrossProjectLoan{
		LoanID:             m.LoanID,
		LenderProjectID:    m.LenderProjectID,
		BorrowerProjectID:  m.BorrowerProjectID,
		Amount:             m.Amount,
		SettlementAmount:   m.SettlementAmount,
		ExpenseID:          m.ExpenseID,
		ExpenseType:        domain.ExpenseType(m.ExpenseType),
		Description:        m.Description,
		Date:               m.LoanDate,
		Status:             domain.LoanStatus(m.Status),
		SettledDate:        m.SettledDate,
		LastSettlementDate: m.LastSettlementDate,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model loans.
func ToDomainLoanSlice(ms []models.CrossProjectLoan) []domain.CrossProjectLoan {
	ds := make([]domain.CrossProjectLoan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}
