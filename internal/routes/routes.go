package routes

import (
	"cashback-service/internal/handlers"
	"cashback-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Webhooks  *handlers.WebhookHandler
	Wallet    *handlers.WalletHandler
	Clicks    *handlers.ClickHandler
	Referrals *handlers.ReferralHandler
	Admin     *handlers.AdminHandler
}

// Register wires the three route surfaces: the public webhook group
// behind a per-IP rate limiter, the authenticated user API, and the
// admin review API behind the admin role guard.
func Register(r *gin.Engine, h Handlers) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Cashback service up",
		})
	})

	webhooks := r.Group("/webhook", middleware.RateLimitMiddleware())
	{
		webhooks.POST("/purchase", h.Webhooks.Purchase)
		webhooks.POST("/confirmation", h.Webhooks.Confirmation)
		webhooks.POST("/cancellation", h.Webhooks.Cancellation)
	}

	api := r.Group("/api", middleware.AuthMiddleware())
	{
		api.GET("/wallet", h.Wallet.GetWallet)
		api.GET("/wallet/transactions", h.Wallet.GetTransactions)
		api.POST("/wallet/withdraw", h.Wallet.RequestWithdrawal)

		api.GET("/offers/:id/track", h.Clicks.TrackClick)

		api.POST("/referrals", h.Referrals.Register)
		api.GET("/referrals", h.Referrals.GetData)
		api.GET("/referrals/history", h.Referrals.GetHistory)
	}

	admin := r.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/transactions/pending", h.Admin.ListPendingTransactions)
		admin.POST("/transactions/:id/approve", h.Admin.ApproveTransaction)
		admin.POST("/transactions/:id/reject", h.Admin.RejectTransaction)
		admin.POST("/withdrawals/:id/approve", h.Admin.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", h.Admin.RejectWithdrawal)
	}
}
