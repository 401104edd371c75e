package mapping

import (
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/models"
)

// ToModelPayment converts a domain ClientPayment to a model ClientPayment.
func ToModelPayment(d domain.ClientPayment) models.ClientPayment {
	return models.ClientPayment{
		PaymentID:       d.PaymentID,
		ProjectID:       d.ProjectID,
		Amount:          d.Amount,
		PaymentDate:     d.PaymentDate,
		PaidFrom:        d.From,
		ReceivedBy:      d.ReceivedBy,
		Method:          d.Method,
		Notes:           d.Notes,
		IsMultiProject:  d.IsMultiProject,
		IsAllocated:     d.IsAllocated,
		AllocationDate:  d.AllocationDate,
		AllocationNotes: d.AllocationNotes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model ClientPayment to a domain ClientPayment.
func ToDomainPayment(m models.ClientPayment) domain.ClientPayment {
	return domain.ClientPayment{
		PaymentID:       m.PaymentID,
		ProjectID:       m.ProjectID,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		From:            m.PaidFrom,
		ReceivedBy:      m.ReceivedBy,
		Method:          m.Method,
		Notes:           m.Notes,
		IsMultiProject:  m.IsMultiProject,
		IsAllocated:     m.IsAllocated,
		AllocationDate:  m.AllocationDate,
		AllocationNotes: m.AllocationNotes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllocation converts a domain PaymentAllocation to its model.
func ToModelAllocation(d domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation{
		AllocationID: d.AllocationID,
		PaymentID:    d.PaymentID,
		ProjectID:    d.ProjectID,
		Amount:       d.Amount,
		Description:  d.Description,
		Date:         d.Date,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAllocation converts a model PaymentAllocation to its domain form.
func ToDomainAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID: m.AllocationID,
		PaymentID:    m.PaymentID,
		ProjectID:    m.ProjectID,
		Amount:       m.Amount,
		Description:  m.Description,
		Date:         m.Date,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocationSlice converts a slice of model allocations.
func ToDomainAllocationSlice(ms []models.PaymentAllocation) []domain.PaymentAllocation {
	ds := make([]domain.PaymentAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}
