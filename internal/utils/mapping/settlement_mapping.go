package mapping

import (
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/models"
)

// ToModelSettlement converts a domain SettlementRecord to its model.
func ToModelSettlement(d domain.SettlementRecord) models.SettlementRecord {
	return models.SettlementRecord{
		SettlementID:      d.SettlementID,
		LoanID:            d.LoanID,
		LenderProjectID:   d.LenderProjectID,
		BorrowerProjectID: d.BorrowerProjectID,
		Amount:            d.Amount,
		SettlementDate:    d.SettlementDate,
		SettlementType:    models.SettlementType(d.SettlementType),
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettlement converts a model SettlementRecord to its domain form.
func ToDomainSettlement(m models.SettlementRecord) domain.SettlementRecord {
	return domain.SettlementRecord{
		SettlementID:      m.SettlementID,
		LoanID:            m.LoanID,
		LenderProjectID:   m.LenderProjectID,
		BorrowerProjectID: m.BorrowerProjectID,
		Amount:            m.Amount,
		SettlementDate:    m.SettlementDate,
		SettlementType:    domain.SettlementType(m.SettlementType),
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSettlementSlice converts a slice of model settlement records.
func ToDomainSettlementSlice(ms []models.SettlementRecord) []domain.SettlementRecord {
	ds := make([]domain.SettlementRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSettlement(m)
	}
	return ds
}
