package reservations

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ticketfront/internal/upstream"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRequest = errors.New("invalid reservation request")
	ErrCreateFailed   = errors.New("reservation was not created")
	ErrCancelFailed   = errors.New("reservation was not cancelled")
)

type Client interface {
	Create(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error)
	Cancel(ctx context.Context, reservationID int64) error
}

type client struct {
	api       *upstream.Client
	validator *validator.Validate
}

func NewClient(api *upstream.Client) Client {
	return &client{
		api:       api,
		validator: validator.New(),
	}
}

func (c *client) Create(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error) {
	if err := c.validator.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	var resp CreateReservationResponse
	if err := c.api.Post(ctx, "/reservations", req, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}
	if resp.ID == 0 {
		return nil, fmt.Errorf("%w: response carried no reservation id", ErrCreateFailed)
	}

	return &resp, nil
}

// Cancel releases a reservation on the reservation API
func (c *client) Cancel(ctx context.Context, reservationID int64) error {
	if reservationID <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidRequest)
	}

	path := "/reservations/reservation/" + strconv.FormatInt(reservationID, 10)
	if err := c.api.Delete(ctx, path, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelFailed, err)
	}
	return nil
}
