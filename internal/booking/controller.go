package booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"ticketfront/internal/payments"
	"ticketfront/internal/seats"
	"ticketfront/internal/shared/middleware"
	"ticketfront/internal/shared/utils/response"
	"ticketfront/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	manager *Manager
}

func NewController(manager *Manager) *Controller {
	return &Controller{manager: manager}
}

// StartSession handles POST /api/v1/booking/sessions
func (ctrl *Controller) StartSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	show := seats.ShowKey{EventID: req.EventID, Date: req.Date, Time: req.Time}
	session, err := ctrl.manager.Start(c.Request.Context(), userID, show)
	if err != nil {
		ctrl.respondError(c, nil, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking session started", toSessionResponse(session.View()), nil)
}

// GetSession handles GET /api/v1/booking/sessions/:id
func (ctrl *Controller) GetSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	session, err := ctrl.manager.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ctrl.respondError(c, nil, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking session retrieved successfully", toSessionResponse(session.View()), nil)
}

// ToggleSeat handles POST /api/v1/booking/sessions/:id/seats/:seatId/toggle
func (ctrl *Controller) ToggleSeat(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	seatID, err := strconv.ParseInt(c.Param("seatId"), 10, 64)
	if err != nil || seatID <= 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	session, err := ctrl.manager.Toggle(c.Request.Context(), userID, c.Param("id"), seatID)
	if err != nil {
		ctrl.respondError(c, session, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Selection updated", toSessionResponse(session.View()), nil)
}

// Refresh handles POST /api/v1/booking/sessions/:id/refresh
func (ctrl *Controller) Refresh(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	session, dropped, err := ctrl.manager.Refresh(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ctrl.respondError(c, session, err)
		return
	}

	if dropped == nil {
		dropped = []seats.Seat{}
	}
	response.RespondJSON(c, "success", http.StatusOK, "Seat map refreshed", RefreshResponse{
		Session: toSessionResponse(session.View()),
		Dropped: dropped,
	}, nil)
}

// Submit handles POST /api/v1/booking/sessions/:id/submit
func (ctrl *Controller) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	session, _, err := ctrl.manager.Submit(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ctrl.respondError(c, session, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Seats reserved", toSessionResponse(session.View()), nil)
}

// Pay handles POST /api/v1/booking/sessions/:id/pay
func (ctrl *Controller) Pay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ctrl.manager.Pay(c.Request.Context(), userID, c.Param("id"), payments.Method(req.PaymentMethod))
	if err != nil {
		ctrl.respondError(c, session, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment completed", toSessionResponse(session.View()), nil)
}

// CancelPayment handles POST /api/v1/booking/sessions/:id/cancel
func (ctrl *Controller) CancelPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ctrl.manager.CancelPayment(c.Request.Context(), userID, c.Param("id"), payments.Method(req.PaymentMethod))
	if err != nil {
		ctrl.respondError(c, session, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment cancelled", toSessionResponse(session.View()), nil)
}

// respondError maps booking failures to status codes. session may be nil.
func (ctrl *Controller) respondError(c *gin.Context, session *Session, err error) {
	var (
		conflict *ConflictError
		limit    *seats.SelectionLimitError
	)

	switch {
	case errors.As(err, &conflict):
		details := ConflictDetails{ConflictSeatIDs: conflict.SeatIDs}
		if session != nil {
			details.Session = toSessionResponse(session.View())
		}
		response.RespondJSON(c, "error", http.StatusConflict, conflict.Error(), nil, details)
	case errors.As(err, &limit):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, gin.H{"maxSeats": limit.Limit})
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrUnauthenticated):
		response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
	case errors.Is(err, ErrOperationInProgress),
		errors.Is(err, ErrInvalidPhase),
		errors.Is(err, ErrSessionClosed):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrEmptySelection),
		errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, seats.ErrSeatNotSelectable):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, seats.ErrSeatFetchFailed),
		errors.Is(err, ErrReservationFailed),
		errors.Is(err, ErrPaymentFailed),
		errors.Is(err, ErrCancelFailed):
		message := upstream.ServerMessage(err)
		if message == "" {
			message = upstreamFallback(err)
		}
		response.RespondJSON(c, "error", http.StatusBadGateway, message, nil, gin.H{
			"retryable": upstream.IsRetryable(err),
		})
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Booking request failed", nil, nil)
	}
}

func upstreamFallback(err error) string {
	switch {
	case errors.Is(err, seats.ErrSeatFetchFailed):
		return "Seat map could not be loaded"
	case errors.Is(err, ErrReservationFailed):
		return "Reservation could not be created"
	case errors.Is(err, ErrPaymentFailed):
		return "Payment could not be completed"
	default:
		return "Payment could not be cancelled"
	}
}
