package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// settlementHandler handles HTTP requests for loan settlement.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers loan and settlement routes.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	loans := rg.Group("/loans")
	{
		loans.GET("/:id", h.getLoan)
		loans.POST("/:id/settle", h.settleLoan)
		loans.GET("/:id/settlements", h.listLoanSettlements)
	}
	projects := rg.Group("/projects/:id")
	{
		projects.POST("/settle", h.autoSettleLoans)
		projects.GET("/loans", h.listProjectLoans)
		projects.GET("/settlements", h.listProjectSettlements)
	}
}

func (h *settlementHandler) autoSettleLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	var req dto.AutoSettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AutoSettleLoans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor := middleware.GetActorFromContext(c)

	outcome, err := h.settlementService.AutoSettleLoans(c.Request.Context(), projectID, req.AvailableAmount, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to auto-settle loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToAutoSettleResponse(outcome))
}

func (h *settlementHandler) settleLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	var req dto.ManualSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor := middleware.GetActorFromContext(c)

	result, err := h.settlementService.SettleLoan(c.Request.Context(), loanID, req, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to settle loan")
		return
	}
	c.JSON(http.StatusOK, dto.ManualSettlementResponse{
		SettlementAmount: result.SettlementAmount,
		RemainingBalance: result.RemainingBalance,
		FullySettled:     result.FullySettled,
	})
}

func (h *settlementHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	loan, err := h.settlementService.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *settlementHandler) listProjectLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	given, received, err := h.settlementService.ListLoansByProject(c.Request.Context(), projectID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loansGiven":    dto.ToLoanResponses(given),
		"loansReceived": dto.ToLoanResponses(received),
	})
}

func (h *settlementHandler) listLoanSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")

	records, err := h.settlementService.ListSettlementsByLoan(c.Request.Context(), loanID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list loan settlements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": dto.ToSettlementRecordResponses(records)})
}

func (h *settlementHandler) listProjectSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	records, err := h.settlementService.ListSettlementsByProject(c.Request.Context(), projectID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list project settlements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": dto.ToSettlementRecordResponses(records)})
}
