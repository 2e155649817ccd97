package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/objectledger/custodian/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	router.GET("/metrics", middleware.MetricsHandler())

	auth := middleware.Auth(authCfg)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Wallet endpoints (reads public, mutations authenticated)
		v1.POST("/wallets", auth, handler.CreateWallet)
		v1.GET("/wallets/:id", handler.GetWallet)
		v1.GET("/wallets/:id/balances", handler.GetBalances)
		v1.POST("/wallets/:id/deposits", auth, handler.Deposit)
		v1.POST("/wallets/:id/withdrawals", auth, handler.Withdraw)

		// Fund housekeeping
		v1.POST("/funds/merge", auth, handler.MergeFunds)

		// Scheduled transfer endpoints
		v1.POST("/transfers", auth, handler.CreateTransfer)
		v1.POST("/transfers/execute-due", auth, handler.ExecuteDue)
		v1.GET("/transfers/:id", handler.GetTransfer)
		v1.POST("/transfers/:id/execute", auth, handler.ExecuteTransfer)
		v1.POST("/transfers/:id/cancel", auth, handler.CancelTransfer)

		// Object endpoints
		v1.GET("/objects/:id", handler.GetObject)
		v1.GET("/objects/:id/transfers", handler.ListObjectTransfers)
		v1.POST("/objects/:id/list", auth, handler.ListObject)
		v1.POST("/objects/:id/delist", auth, handler.DelistObject)

		// Purchase endpoint
		v1.POST("/purchases", auth, handler.Purchase)

		// Marketplace reads (public)
		v1.GET("/marketplace", handler.GetMarketplaceInfo)
		v1.GET("/marketplace/stats", handler.GetMarketplaceStats)
		v1.GET("/marketplace/tokens", handler.GetSupportedTokens)

		// Submission journal (diagnostics, public read)
		v1.GET("/submissions/:id", handler.GetSubmission)
	}
}
