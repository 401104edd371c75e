package services

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// FundReportingSvcFacade exposes per-project and fleet-wide fund reporting.
type FundReportingSvcFacade interface {
	// GetProjectFinancialSummary aggregates the project's wallet, active
	// loans on both sides, and cumulative payment allocations.
	GetProjectFinancialSummary(ctx context.Context, projectID string) (*domain.ProjectFinancialSummary, error)

	// GetOverallFundStatus aggregates every project's summary and checks the
	// conservation invariant (loans given vs loans received).
	GetOverallFundStatus(ctx context.Context) (*domain.OverallFundStatus, error)
}
