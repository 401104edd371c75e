package domain

import "github.com/shopspring/decimal"

// ProjectFinancialSummary aggregates one project's wallet, active loans on
// both sides, and cumulative payment allocations.
type ProjectFinancialSummary struct {
	ProjectID             string             `json:"projectID"`
	VirtualBalance        decimal.Decimal    `json:"virtualBalance"`
	AdvanceReceived       decimal.Decimal    `json:"advanceReceived"`
	PendingDues           decimal.Decimal    `json:"pendingDues"`
	ActiveLoansGiven      decimal.Decimal    `json:"activeLoansGiven"`    // outstanding on active lent loans
	ActiveLoansReceived   decimal.Decimal    `json:"activeLoansReceived"` // outstanding on active borrowed loans
	NetAvailableBalance   decimal.Decimal    `json:"netAvailableBalance"`
	TotalPaymentsReceived decimal.Decimal    `json:"totalPaymentsReceived"`
	LoansGiven            []CrossProjectLoan `json:"loansGiven"`
	LoansReceived         []CrossProjectLoan `json:"loansReceived"`
}

// ProjectFundOverview is a ProjectFinancialSummary annotated with the
// project's name, for the fleet-wide report.
type ProjectFundOverview struct {
	ProjectName string `json:"projectName"`
	ProjectFinancialSummary
}

// OverallFundStatus aggregates every project's summary. IsBalanced is the
// standing conservation check: total outstanding loans given must equal
// total outstanding loans received across all projects.
type OverallFundStatus struct {
	TotalVirtualBalance decimal.Decimal       `json:"totalVirtualBalance"`
	TotalActiveLoans    decimal.Decimal       `json:"totalActiveLoans"`
	NetBankBalance      decimal.Decimal       `json:"netBankBalance"`
	Projects            []ProjectFundOverview `json:"projects"`
	IsBalanced          bool                  `json:"isBalanced"`
}
