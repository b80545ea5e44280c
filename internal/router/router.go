package router

import (
	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/internal/app/controller"
	"github.com/bancoriental/unipersonal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	onboardingController   *controller.OnboardingController
	notificationController *controller.NotificationController
	locationController     *controller.LocationController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	onboardingController *controller.OnboardingController,
	notificationController *controller.NotificationController,
	locationController *controller.LocationController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		onboardingController:   onboardingController,
		notificationController: notificationController,
		locationController:     locationController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Unipersonal onboarding API is running",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		nonBusinesses := v1.Group("/non-businesses")
		{
			nonBusinesses.GET("/search", r.onboardingController.Search)
			nonBusinesses.POST("", r.onboardingController.Create)
			nonBusinesses.GET("/:id", r.onboardingController.GetByID)
			nonBusinesses.PATCH("/:id", r.onboardingController.Patch)
			nonBusinesses.PATCH("/:id/economic-data", r.onboardingController.PatchEconomicData)
			nonBusinesses.POST("/:id/addresses", r.onboardingController.CreateAddress)
			nonBusinesses.POST("/:id/contact-details", r.onboardingController.CreateContactDetail)
			nonBusinesses.PUT("/:id/terms", r.onboardingController.UpdateTerms)
		}

		v1.POST("/notifications", r.notificationController.Send)
		v1.GET("/departments", r.locationController.GetDepartments)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-Id, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
