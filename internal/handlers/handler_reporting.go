package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// reportingHandler handles HTTP requests for fund reporting.
type reportingHandler struct {
	reportingService portssvc.FundReportingSvcFacade
}

func newReportingHandler(rs portssvc.FundReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers fund reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.FundReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/projects/:id/summary", h.getProjectFinancialSummary)
	rg.GET("/fund/status", h.getOverallFundStatus)
}

func (h *reportingHandler) getProjectFinancialSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	summary, err := h.reportingService.GetProjectFinancialSummary(c.Request.Context(), projectID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get project financial summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectFinancialSummaryResponse(summary))
}

func (h *reportingHandler) getOverallFundStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status, err := h.reportingService.GetOverallFundStatus(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to get overall fund status")
		return
	}
	c.JSON(http.StatusOK, dto.ToOverallFundStatusResponse(status))
}
