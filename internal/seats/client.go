package seats

import (
	"context"
	"fmt"

	"ticketfront/internal/upstream"
)

// InventoryClient reads the seat map of a show
type InventoryClient interface {
	FetchSeats(ctx context.Context, show ShowKey) ([]Seat, error)
}

type client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) InventoryClient {
	return &client{api: api}
}

// FetchSeats returns a fresh snapshot. Failures are never retried here.
func (c *client) FetchSeats(ctx context.Context, show ShowKey) ([]Seat, error) {
	var seats []Seat
	if err := c.api.Get(ctx, show.inventoryPath(), show.query(), &seats); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeatFetchFailed, err)
	}
	return seats, nil
}
