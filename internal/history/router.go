package history

import (
	"github.com/gin-gonic/gin"
)

// SetupHistoryRoutes configures the reservation history routes. auth must
// populate the user id and access token.
func SetupHistoryRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	me := rg.Group("/me/reservations")
	me.Use(auth)
	{
		me.GET("", controller.ListReservations)                    // GET /api/v1/me/reservations
		me.DELETE("/:reservationId", controller.CancelReservation) // DELETE /api/v1/me/reservations/:reservationId
	}
}
