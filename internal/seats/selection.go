package seats

import (
	"fmt"

	"github.com/samber/lo"
)

// DefaultMaxSelection is the number of seats one booking may hold
const DefaultMaxSelection = 6

// SelectionModel keeps the last fetched seat map untouched and tracks the
// user's picks as a separate ordered list of seat ids. The rendered seat map
// is the snapshot with SELECTED applied to the picked ids.
//
// A SelectionModel is not safe for concurrent use.
type SelectionModel struct {
	limit    int
	snapshot []Seat
	index    map[int64]int
	selected []int64
}

// SelectionState is the serialisable form of a SelectionModel
type SelectionState struct {
	Snapshot []Seat  `json:"snapshot"`
	Selected []int64 `json:"selected"`
}

func NewSelectionModel(limit int) *SelectionModel {
	if limit <= 0 {
		limit = DefaultMaxSelection
	}
	return &SelectionModel{
		limit: limit,
		index: map[int64]int{},
	}
}

// Replace installs a new authoritative snapshot and drops the selection
func (m *SelectionModel) Replace(snapshot []Seat) {
	m.snapshot = append([]Seat(nil), snapshot...)
	m.index = make(map[int64]int, len(m.snapshot))
	for i, seat := range m.snapshot {
		if _, dup := m.index[seat.ID]; !dup {
			m.index[seat.ID] = i
		}
	}
	m.selected = nil
}

// Toggle picks or releases a seat. Unknown ids are ignored.
func (m *SelectionModel) Toggle(seatID int64) error {
	i, ok := m.index[seatID]
	if !ok {
		return nil
	}

	if pos := lo.IndexOf(m.selected, seatID); pos >= 0 {
		m.selected = append(m.selected[:pos], m.selected[pos+1:]...)
		return nil
	}

	seat := m.snapshot[i]
	switch {
	case seat.Status.IsTaken():
		return fmt.Errorf("seat %d is taken: %w", seatID, ErrSeatNotSelectable)
	case !seat.IsAvailable():
		return fmt.Errorf("seat %d is %s: %w", seatID, seat.Status, ErrSeatNotSelectable)
	}
	if len(m.selected) >= m.limit {
		return &SelectionLimitError{Limit: m.limit}
	}

	m.selected = append(m.selected, seatID)
	return nil
}

// IsSelected reports whether seatID is in the selection
func (m *SelectionModel) IsSelected(seatID int64) bool {
	return lo.Contains(m.selected, seatID)
}

// Selection returns the picked seats in the order they were picked
func (m *SelectionModel) Selection() []Seat {
	return lo.Map(m.selected, func(id int64, _ int) Seat {
		seat := m.snapshot[m.index[id]]
		seat.Status = StatusSelected
		return seat
	})
}

// Seats returns the seat map as it should be rendered
func (m *SelectionModel) Seats() []Seat {
	view := make([]Seat, len(m.snapshot))
	copy(view, m.snapshot)
	for _, id := range m.selected {
		view[m.index[id]].Status = StatusSelected
	}
	return view
}

// Snapshot returns the last fetched seat map without local picks
func (m *SelectionModel) Snapshot() []Seat {
	return append([]Seat(nil), m.snapshot...)
}

// Total is the price of the current selection, computed on every call
func (m *SelectionModel) Total() int64 {
	return lo.SumBy(m.Selection(), func(seat Seat) int64 {
		return seat.Price
	})
}

func (m *SelectionModel) Len() int {
	return len(m.selected)
}

func (m *SelectionModel) Limit() int {
	return m.limit
}

// Clear drops the selection and keeps the snapshot
func (m *SelectionModel) Clear() {
	m.selected = nil
}

// DropSelection clears the selection and returns the seats it held. It is
// the first half of a refresh; Replace with the fresh map completes it. When
// the fetch in between fails the snapshot stays in place and is stale.
func (m *SelectionModel) DropSelection() []Seat {
	dropped := m.Selection()
	m.selected = nil
	return dropped
}

// State captures the model for persistence
func (m *SelectionModel) State() SelectionState {
	return SelectionState{
		Snapshot: m.Snapshot(),
		Selected: append([]int64(nil), m.selected...),
	}
}

// Restore loads a persisted state. Selected ids that are no longer present
// or no longer available in the snapshot are discarded.
func (m *SelectionModel) Restore(state SelectionState) {
	m.Replace(state.Snapshot)
	for _, id := range state.Selected {
		i, ok := m.index[id]
		if !ok || !m.snapshot[i].IsAvailable() || m.IsSelected(id) || len(m.selected) >= m.limit {
			continue
		}
		m.selected = append(m.selected, id)
	}
}
