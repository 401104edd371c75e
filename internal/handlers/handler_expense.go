package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// expenseHandler handles HTTP requests for cross-project expenses.
type expenseHandler struct {
	expenseService portssvc.CrossProjectExpenseSvcFacade
}

func newExpenseHandler(es portssvc.CrossProjectExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.CrossProjectExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("/cross-project", h.recordCrossProjectExpense)
		expenses.GET("/:id", h.getExpense)
	}
	rg.GET("/projects/:id/expenses", h.listProjectExpenses)
}

func (h *expenseHandler) recordCrossProjectExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordCrossProjectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordCrossProjectExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor := middleware.GetActorFromContext(c)

	expense, loans, err := h.expenseService.RecordCrossProjectExpense(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record cross-project expense")
		return
	}
	c.JSON(http.StatusCreated, dto.CrossProjectExpenseResponse{
		Expense: dto.ToExpenseResponse(expense),
		Loans:   dto.ToLoanResponses(loans),
	})
}

func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	expense, err := h.expenseService.GetExpense(c.Request.Context(), expenseID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) listProjectExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	expenses, err := h.expenseService.ListExpensesByProject(c.Request.Context(), projectID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": dto.ToExpenseResponses(expenses)})
}
