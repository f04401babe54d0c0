package booking

import (
	"context"

	"ticketfront/internal/seats"
)

// Reconciler checks a selection against a fresh seat map before submission
type Reconciler struct {
	inventory seats.InventoryClient
}

func NewReconciler(inventory seats.InventoryClient) *Reconciler {
	return &Reconciler{inventory: inventory}
}

// Validate re-fetches the seat map and returns it together with a
// *ConflictError naming every selected seat that is no longer AVAILABLE, in
// selection order. Seats missing from the fresh map are not conflicts; the
// reservation API rejects them on submit if they are really gone.
func (r *Reconciler) Validate(ctx context.Context, selection []seats.Seat, show seats.ShowKey) ([]seats.Seat, error) {
	fresh, err := r.inventory.FetchSeats(ctx, show)
	if err != nil {
		return nil, err
	}

	current := make(map[int64]seats.Status, len(fresh))
	for _, seat := range fresh {
		if _, dup := current[seat.ID]; !dup {
			current[seat.ID] = seat.Status
		}
	}

	var conflicts []int64
	for _, seat := range selection {
		if status, ok := current[seat.ID]; ok && status != seats.StatusAvailable {
			conflicts = append(conflicts, seat.ID)
		}
	}

	if len(conflicts) > 0 {
		return fresh, &ConflictError{SeatIDs: conflicts}
	}
	return fresh, nil
}
