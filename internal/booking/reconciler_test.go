package booking

import (
	"context"
	"testing"

	"ticketfront/internal/seats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilerValidate(t *testing.T) {
	selection := []seats.Seat{
		seat(3, 10000, seats.StatusSelected),
		seat(1, 10000, seats.StatusSelected),
		seat(5, 10000, seats.StatusSelected),
	}

	tests := []struct {
		name      string
		fresh     []seats.Seat
		conflicts []int64
	}{
		{
			name: "all still available",
			fresh: []seats.Seat{
				seat(1, 10000, seats.StatusAvailable),
				seat(3, 10000, seats.StatusAvailable),
				seat(5, 10000, seats.StatusAvailable),
			},
		},
		{
			name: "taken seats reported in selection order",
			fresh: []seats.Seat{
				seat(1, 10000, seats.StatusReserved),
				seat(3, 10000, seats.StatusWaiting),
				seat(5, 10000, seats.StatusAvailable),
			},
			conflicts: []int64{3, 1},
		},
		{
			name: "selected by someone else",
			fresh: []seats.Seat{
				seat(1, 10000, seats.StatusAvailable),
				seat(3, 10000, seats.StatusAvailable),
				seat(5, 10000, seats.StatusSelected),
			},
			conflicts: []int64{5},
		},
		{
			name: "missing seats are not conflicts",
			fresh: []seats.Seat{
				seat(1, 10000, seats.StatusAvailable),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReconciler(newFakeInventory(tt.fresh))
			fresh, err := r.Validate(context.Background(), selection, testShow)
			assert.Equal(t, tt.fresh, fresh)

			if tt.conflicts == nil {
				assert.NoError(t, err)
				return
			}
			var conflict *ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.conflicts, conflict.SeatIDs)
		})
	}
}

func TestReconcilerFetchFailure(t *testing.T) {
	inventory := newFakeInventory(nil)
	inventory.err = errUpstreamDown

	fresh, err := NewReconciler(inventory).Validate(context.Background(), []seats.Seat{seat(1, 100, seats.StatusSelected)}, testShow)
	assert.Nil(t, fresh)
	assert.ErrorIs(t, err, seats.ErrSeatFetchFailed)
	assert.NotErrorIs(t, err, ErrConflict)
}
