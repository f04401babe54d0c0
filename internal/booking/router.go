package booking

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures the booking session routes. auth must
// populate the user id and access token.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	sessions := rg.Group("/booking/sessions")
	sessions.Use(auth)
	{
		sessions.POST("", controller.StartSession)                        // POST /api/v1/booking/sessions
		sessions.GET("/:id", controller.GetSession)                       // GET /api/v1/booking/sessions/:id
		sessions.POST("/:id/seats/:seatId/toggle", controller.ToggleSeat) // POST /api/v1/booking/sessions/:id/seats/:seatId/toggle
		sessions.POST("/:id/refresh", controller.Refresh)                 // POST /api/v1/booking/sessions/:id/refresh
		sessions.POST("/:id/submit", controller.Submit)                   // POST /api/v1/booking/sessions/:id/submit
		sessions.POST("/:id/pay", controller.Pay)                         // POST /api/v1/booking/sessions/:id/pay
		sessions.POST("/:id/cancel", controller.CancelPayment)            // POST /api/v1/booking/sessions/:id/cancel
	}
}
