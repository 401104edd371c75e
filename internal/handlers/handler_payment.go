package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// paymentHandler handles HTTP requests for payment allocation.
type paymentHandler struct {
	allocationService portssvc.PaymentAllocatorSvcFacade
}

func newPaymentHandler(as portssvc.PaymentAllocatorSvcFacade) *paymentHandler {
	return &paymentHandler{allocationService: as}
}

// registerPaymentRoutes registers routes related to client payments.
func registerPaymentRoutes(rg *gin.RouterGroup, allocationService portssvc.PaymentAllocatorSvcFacade) {
	h := newPaymentHandler(allocationService)

	payments := rg.Group("/payments")
	{
		payments.POST("/allocate", h.allocatePayment)
		payments.POST("/:id/allocate", h.allocateExistingPayment)
		payments.GET("/:id", h.getPayment)
		payments.DELETE("/:id", h.deletePayment)
	}
}

func (h *paymentHandler) allocatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AllocatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AllocatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor := middleware.GetActorFromContext(c)

	payment, err := h.allocationService.AllocatePayment(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to allocate payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) allocateExistingPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	var req dto.AllocateExistingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AllocateExistingPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor := middleware.GetActorFromContext(c)

	payment, err := h.allocationService.AllocateExistingPayment(c.Request.Context(), paymentID, req, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to allocate payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, allocations, err := h.allocationService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get payment")
		return
	}
	c.JSON(http.StatusOK, dto.PaymentWithAllocationsResponse{
		Payment:     dto.ToPaymentResponse(payment),
		Allocations: dto.ToAllocationResponses(allocations),
	})
}

func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")
	actor := middleware.GetActorFromContext(c)

	if err := h.allocationService.DeletePayment(c.Request.Context(), paymentID, actor); err != nil {
		respondWithError(c, logger, err, "Failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}
