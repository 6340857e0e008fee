package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"sakay/internal/handler"
	"sakay/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler    *handler.RideHandler
	UserHandler    *handler.UserHandler
	PartnerHandler *handler.PartnerHandler
	WalletHandler  *handler.WalletHandler
	FleetHandler   *handler.FleetHandler
	AdminHandler   *handler.AdminHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/:id", deps.UserHandler.Get)
			users.PATCH("/:id", deps.UserHandler.UpdateProfile)
		}

		// Partner routes.
		partners := v1.Group("/partners")
		{
			partners.POST("/register", deps.PartnerHandler.Register)
			partners.GET("", deps.PartnerHandler.GetAll)
			partners.GET("/:id", deps.PartnerHandler.Get)
			partners.POST("/:id/online", deps.PartnerHandler.SetOnline)
			partners.PATCH("/:id/profile", deps.PartnerHandler.UpdateProfile)
			partners.POST("/:id/transfer", deps.PartnerHandler.Transfer)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.GET("", deps.RideHandler.GetAll)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/accept", deps.RideHandler.Accept)
			rides.POST("/:id/arrive", deps.RideHandler.Arrive)
			rides.POST("/:id/start", deps.RideHandler.Start)
			rides.POST("/:id/complete", deps.RideHandler.Complete)
			rides.POST("/:id/cancel", deps.RideHandler.Cancel)
			rides.POST("/:id/tip", deps.RideHandler.Tip)
		}

		// Wallet routes.
		wallet := v1.Group("/wallet")
		{
			wallet.POST("/topup", deps.WalletHandler.TopUp)
		}

		// Fleet routes.
		fleet := v1.Group("/fleet")
		{
			fleet.GET("/positions", deps.FleetHandler.GetAll)
			fleet.GET("/nearby", deps.FleetHandler.GetNearby)
		}

		// Admin routes.
		admin := v1.Group("/admin")
		{
			admin.PATCH("/accounts/:id/status", deps.AdminHandler.UpdateAccountStatus)
			admin.DELETE("/accounts/:id", deps.AdminHandler.DeleteAccount)
			admin.GET("/commissions", deps.AdminHandler.Commissions)
			admin.POST("/reset", deps.AdminHandler.Reset)
			admin.POST("/partners/spawn", deps.AdminHandler.SpawnPartners)
		}
	}

	return router
}
