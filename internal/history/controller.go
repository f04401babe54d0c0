package history

import (
	"errors"
	"net/http"
	"strconv"

	"ticketfront/internal/reservations"
	"ticketfront/internal/shared/middleware"
	"ticketfront/internal/shared/utils/response"
	"ticketfront/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListReservations handles GET /api/v1/me/reservations
func (ctrl *Controller) ListReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.ListUserReservations(c.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load reservations", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservations retrieved successfully", result, nil)
}

// CancelReservation handles DELETE /api/v1/me/reservations/:reservationId
func (ctrl *Controller) CancelReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	reservationID, err := strconv.ParseInt(c.Param("reservationId"), 10, 64)
	if err != nil || reservationID <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
		return
	}

	result, err := ctrl.service.CancelReservation(c.Request.Context(), userID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrNotCancellable):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case errors.Is(err, reservations.ErrCancelFailed):
			message := upstream.ServerMessage(err)
			if message == "" {
				message = "Reservation could not be cancelled"
			}
			response.RespondJSON(c, "error", http.StatusBadGateway, message, nil, gin.H{
				"retryable": upstream.IsRetryable(err),
			})
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to cancel reservation", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation cancelled successfully", result, nil)
}
