package dto

import (
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProjectFinancialSummaryResponse mirrors domain.ProjectFinancialSummary.
type ProjectFinancialSummaryResponse struct {
	ProjectID             string          `json:"projectID"`
	VirtualBalance        decimal.Decimal `json:"virtualBalance"`
	AdvanceReceived       decimal.Decimal `json:"advanceReceived"`
	PendingDues           decimal.Decimal `json:"pendingDues"`
	ActiveLoansGiven      decimal.Decimal `json:"activeLoansGiven"`
	ActiveLoansReceived   decimal.Decimal `json:"activeLoansReceived"`
	NetAvailableBalance   decimal.Decimal `json:"netAvailableBalance"`
	TotalPaymentsReceived decimal.Decimal `json:"totalPaymentsReceived"`
	LoansGiven            []LoanResponse  `json:"loansGiven"`
	LoansReceived         []LoanResponse  `json:"loansReceived"`
}

// ProjectFundOverviewResponse is a summary annotated with the project name.
type ProjectFundOverviewResponse struct {
	ProjectName string `json:"projectName"`
	ProjectFinancialSummaryResponse
}

// OverallFundStatusResponse mirrors domain.OverallFundStatus.
type OverallFundStatusResponse struct {
	TotalVirtualBalance decimal.Decimal               `json:"totalVirtualBalance"`
	TotalActiveLoans    decimal.Decimal               `json:"totalActiveLoans"`
	NetBankBalance      decimal.Decimal               `json:"netBankBalance"`
	Projects            []ProjectFundOverviewResponse `json:"projects"`
	IsBalanced          bool                          `json:"isBalanced"`
}

// ToProjectFinancialSummaryResponse converts a domain summary.
func ToProjectFinancialSummaryResponse(s *domain.ProjectFinancialSummary) ProjectFinancialSummaryResponse {
	return ProjectFinancialSummaryResponse{
		ProjectID:             s.ProjectID,
		VirtualBalance:        s.VirtualBalance,
		AdvanceReceived:       s.AdvanceReceived,
		PendingDues:           s.PendingDues,
		ActiveLoansGiven:      s.ActiveLoansGiven,
		ActiveLoansReceived:   s.ActiveLoansReceived,
		NetAvailableBalance:   s.NetAvailableBalance,
		TotalPaymentsReceived: s.TotalPaymentsReceived,
		LoansGiven:            ToLoanResponses(s.LoansGiven),
		LoansReceived:         ToLoanResponses(s.LoansReceived),
	}
}

// ToOverallFundStatusResponse converts a domain fund status.
func ToOverallFundStatusResponse(s *domain.OverallFundStatus) OverallFundStatusResponse {
	projects := make([]ProjectFundOverviewResponse, len(s.Projects))
	for i, p := range s.Projects {
		projects[i] = ProjectFundOverviewResponse{
			ProjectName:                     p.ProjectName,
			ProjectFinancialSummaryResponse: ToProjectFinancialSummaryResponse(&p.ProjectFinancialSummary),
		}
	}
	return OverallFundStatusResponse{
		TotalVirtualBalance: s.TotalVirtualBalance,
		TotalActiveLoans:    s.TotalActiveLoans,
		NetBankBalance:      s.NetBankBalance,
		Projects:            projects,
		IsBalanced:          s.IsBalanced,
	}
}
