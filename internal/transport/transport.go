package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/seat-reservation/internal/transport/middleware"
)

func InitRoutes(jwtSecret string, eventHandler *EventHandler, bookingHandler *BookingHandler, userHandler *UserHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	identity := middleware.Identity(jwtSecret)

	// API routes
	api := router.Group("/api/v1")
	{
		// Event routes
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/availability", eventHandler.GetAvailability)
		}

		// Booking routes
		bookings := api.Group("/bookings", identity)
		{
			bookings.POST("", bookingHandler.Reserve)
			bookings.GET("/history", bookingHandler.History)
		}

		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
