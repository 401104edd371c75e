package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// walletHandler handles HTTP requests related to project wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers wallet routes under /projects/:id.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	projects := rg.Group("/projects/:id")
	{
		projects.POST("/wallet", h.initializeWallet)
		projects.GET("/wallet", h.getBalance)
	}
}

func (h *walletHandler) initializeWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")
	actor := middleware.GetActorFromContext(c)

	wallet, err := h.walletService.InitializeWallet(c.Request.Context(), projectID, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to initialize wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletBalanceResponse(wallet))
}

func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")
	actor := middleware.GetActorFromContext(c)

	balance, err := h.walletService.GetBalance(c.Request.Context(), projectID, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get wallet balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}
