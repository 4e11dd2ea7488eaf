package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace-mirror/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
	"github.com/feral-file/ff-marketplace-mirror/internal/reconciler"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator, identities reconciler.IdentityResolver) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Confirmations (the caller is the authenticated user)
		nfts := v1.Group("/nfts")
		nfts.POST("/:id/confirm-mint", middleware.Auth(auth), handler.ConfirmMint)
		nfts.POST("/:id/list", middleware.Auth(auth), handler.ConfirmList)
		nfts.POST("/:id/unlist", middleware.Auth(auth), handler.ConfirmUnlist)
		nfts.POST("/:id/confirm-purchase", middleware.Auth(auth), handler.ConfirmPurchase)
		nfts.POST("/:id/sync-listing", middleware.Auth(auth), handler.SyncListing)

		// Ledger (public read access)
		nfts.GET("/:id/events", handler.GetNFTEvents)
		v1.GET("/events/address/:address", handler.GetEventsByAddress)
		v1.GET("/events/type/:event_type", handler.GetEventsByType)

		// Stats (admin only)
		v1.GET("/stats/platform-revenue",
			middleware.Auth(auth),
			middleware.RequireRole(identities, domain.UserRoleAdmin),
			handler.GetPlatformRevenue)
	}
}
