package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting service
// dependencies through interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerProjectRoutes(v1, services.Project)
	registerWalletRoutes(v1, services.Wallet)
	registerPaymentRoutes(v1, services.Allocation)
	registerExpenseRoutes(v1, services.Expense)
	registerSettlementRoutes(v1, services.Settlement)
	registerReportingRoutes(v1, services.Reporting)
}
