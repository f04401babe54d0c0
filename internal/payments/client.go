package payments

import (
	"context"
	"errors"
	"fmt"

	"ticketfront/internal/upstream"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRequest = errors.New("invalid payment request")
	ErrRejected       = errors.New("payment was rejected")
)

type Client interface {
	// Pay confirms payment of a reservation
	Pay(ctx context.Context, reservationID int64, method Method) error
	// Cancel withdraws from paying; price is the total of the reserved seats
	Cancel(ctx context.Context, reservationID int64, method Method, price int64) error
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

func (c *client) Pay(ctx context.Context, reservationID int64, method Method) error {
	return c.submit(ctx, PaymentRequest{
		ReservationID: reservationID,
		PaymentMethod: method,
		PaymentStatus: StatusSuccess,
	})
}

func (c *client) Cancel(ctx context.Context, reservationID int64, method Method, price int64) error {
	return c.submit(ctx, PaymentRequest{
		ReservationID: reservationID,
		PaymentMethod: method,
		PaymentStatus: StatusCanceled,
		Price:         &price,
	})
}

func (c *client) submit(ctx context.Context, req PaymentRequest) error {
	if err := c.validator.Struct(&req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if err := c.api.Post(ctx, "/payments", req, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return nil
}
