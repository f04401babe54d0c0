package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ticketfront/internal/notifications"
	"ticketfront/internal/payments"
	"ticketfront/internal/reservations"
	"ticketfront/internal/seats"
	"ticketfront/internal/upstream"
	"ticketfront/pkg/logger"

	"github.com/samber/lo"
)

// Dependencies are the collaborators shared by every session
type Dependencies struct {
	Inventory    seats.InventoryClient
	Reservations reservations.Client
	Payments     payments.Client
	Publisher    notifications.Publisher
	Logger       *logger.Logger
	MaxSeats     int
}

// Reservation is what the reservation API accepted for this session
type Reservation struct {
	ID            int64           `json:"id"`
	Seats         []seats.Seat    `json:"seats"`
	Total         int64           `json:"total"`
	PaymentMethod payments.Method `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Session drives one user's booking of one show from seat picking to a
// paid or cancelled reservation.
//
// The mutex only guards state changes. It is released before any call to
// the reservation API; the in-flight phase keeps other operations out
// until the call returns.
type Session struct {
	mu sync.Mutex
	// saveMu orders writes of this session to the store
	saveMu sync.Mutex

	id        string
	userID    string
	show      seats.ShowKey
	phase     Phase
	model     *seats.SelectionModel
	reserved  *Reservation
	version   int64
	createdAt time.Time
	updatedAt time.Time

	deps       *Dependencies
	reconciler *Reconciler
}

func newSession(id, userID string, show seats.ShowKey, deps *Dependencies) *Session {
	now := time.Now().UTC()
	return &Session{
		id:         id,
		userID:     userID,
		show:       show,
		phase:      PhaseSelecting,
		model:      seats.NewSelectionModel(deps.MaxSeats),
		createdAt:  now,
		updatedAt:  now,
		deps:       deps,
		reconciler: NewReconciler(deps.Inventory),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) Show() seats.ShowKey {
	return s.show
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Toggle picks or releases a seat while the user is selecting
func (s *Session) Toggle(seatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(PhaseSelecting); err != nil {
		return err
	}
	if err := s.model.Toggle(seatID); err != nil {
		return err
	}
	s.touch()
	return nil
}

// Refresh discards the selection and reloads the seat map. The discarded
// seats are returned. On a failed fetch the previous map is kept.
func (s *Session) Refresh(ctx context.Context) ([]seats.Seat, error) {
	s.mu.Lock()
	if err := s.guard(PhaseSelecting); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	dropped := s.model.DropSelection()
	s.phase = PhaseRefreshing
	s.touch()
	s.mu.Unlock()

	fresh, err := s.deps.Inventory.FetchSeats(ctx, s.show)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseSelecting
	s.touch()
	if err != nil {
		return dropped, err
	}
	s.model.Replace(fresh)
	return dropped, nil
}

// Submit re-checks the selection against the reservation API and reserves it
func (s *Session) Submit(ctx context.Context) (*Reservation, error) {
	s.mu.Lock()
	if err := s.guard(PhaseSelecting); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.model.Len() == 0 {
		s.mu.Unlock()
		return nil, ErrEmptySelection
	}
	if upstream.TokenFromContext(ctx) == "" {
		s.mu.Unlock()
		return nil, ErrUnauthenticated
	}
	selection := s.model.Selection()
	total := s.model.Total()
	s.phase = PhaseSubmitting
	s.touch()
	s.mu.Unlock()

	fresh, err := s.reconciler.Validate(ctx, selection, s.show)
	if err != nil {
		var conflict *ConflictError
		s.mu.Lock()
		s.phase = PhaseSelecting
		if errors.As(err, &conflict) {
			// The fresh map doubles as the refresh; the selection goes with it
			s.model.Replace(fresh)
		}
		s.touch()
		s.mu.Unlock()

		if conflict != nil {
			s.deps.Logger.LogConflictDetected(ctx, s.id, conflict.SeatIDs)
			s.publish(ctx, s.event(notifications.EventTypeConflictDetected).
				WithSeats(seatIDs(selection), total).
				WithConflicts(conflict.SeatIDs))
		}
		return nil, err
	}

	resp, err := s.deps.Reservations.Create(ctx, reservationRequest(s.show.EventID, selection))
	if err != nil {
		s.mu.Lock()
		s.phase = PhaseSelecting
		s.touch()
		s.mu.Unlock()

		s.publish(ctx, s.event(notifications.EventTypeReservationFailed).
			WithSeats(seatIDs(selection), total).
			WithReason(err))
		return nil, fmt.Errorf("%w: %w", ErrReservationFailed, err)
	}

	reservation := &Reservation{
		ID:        resp.ID,
		Seats:     selection,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.reserved = reservation
	s.model.Clear()
	s.phase = PhaseReserved
	s.touch()
	s.mu.Unlock()

	s.deps.Logger.LogReservationCreated(ctx, s.id, resp.ID, len(selection), total)
	s.publish(ctx, s.event(notifications.EventTypeReservationCreated).
		WithReservation(resp.ID).
		WithSeats(seatIDs(selection), total))

	return copyReservation(reservation), nil
}

// Pay confirms payment of the reservation. An empty method means the default.
func (s *Session) Pay(ctx context.Context, method payments.Method) error {
	if method == "" {
		method = payments.DefaultMethod
	}

	s.mu.Lock()
	if err := s.guard(PhaseReserved); err != nil {
		s.mu.Unlock()
		return err
	}
	if !method.IsValid() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, method)
	}
	if upstream.TokenFromContext(ctx) == "" {
		s.mu.Unlock()
		return ErrUnauthenticated
	}
	reservation := *s.reserved
	s.phase = PhasePaying
	s.touch()
	s.mu.Unlock()

	if err := s.deps.Payments.Pay(ctx, reservation.ID, method); err != nil {
		s.mu.Lock()
		s.phase = PhaseReserved
		s.touch()
		s.mu.Unlock()

		s.publish(ctx, s.event(notifications.EventTypePaymentFailed).
			WithReservation(reservation.ID).
			WithPaymentMethod(method.String()).
			WithReason(err))
		return fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	s.mu.Lock()
	s.reserved.PaymentMethod = method
	s.phase = PhasePaid
	s.touch()
	s.mu.Unlock()

	s.deps.Logger.LogPaymentCompleted(ctx, s.id, reservation.ID, method.String())
	s.publish(ctx, s.event(notifications.EventTypePaymentCompleted).
		WithReservation(reservation.ID).
		WithSeats(seatIDs(reservation.Seats), reservation.Total).
		WithPaymentMethod(method.String()))
	return nil
}

// CancelPayment withdraws from paying for the reservation. method is the one
// picked on the payment step; empty means the default.
func (s *Session) CancelPayment(ctx context.Context, method payments.Method) error {
	if method == "" {
		method = payments.DefaultMethod
	}

	s.mu.Lock()
	if err := s.guard(PhaseReserved); err != nil {
		s.mu.Unlock()
		return err
	}
	if !method.IsValid() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, method)
	}
	if upstream.TokenFromContext(ctx) == "" {
		s.mu.Unlock()
		return ErrUnauthenticated
	}
	reservation := *s.reserved
	s.phase = PhaseCancelling
	s.touch()
	s.mu.Unlock()

	if err := s.deps.Payments.Cancel(ctx, reservation.ID, method, reservation.Total); err != nil {
		s.mu.Lock()
		s.phase = PhaseReserved
		s.touch()
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrCancelFailed, err)
	}

	s.mu.Lock()
	s.reserved.PaymentMethod = method
	s.phase = PhaseCancelled
	s.touch()
	s.mu.Unlock()

	s.deps.Logger.LogPaymentCancelled(ctx, s.id, reservation.ID, reservation.Total)
	s.publish(ctx, s.event(notifications.EventTypePaymentCancelled).
		WithReservation(reservation.ID).
		WithSeats(seatIDs(reservation.Seats), reservation.Total))
	return nil
}

// View is a consistent read of the session for rendering
type View struct {
	ID          string
	Show        seats.ShowKey
	Phase       Phase
	Seats       []seats.Seat
	Selection   []seats.Seat
	Total       int64
	MaxSeats    int
	Reservation *Reservation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		ID:          s.id,
		Show:        s.show,
		Phase:       s.phase,
		Seats:       s.model.Seats(),
		Selection:   s.model.Selection(),
		Total:       s.model.Total(),
		MaxSeats:    s.model.Limit(),
		Reservation: copyReservation(s.reserved),
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
}

// guard expects s.mu to be held
func (s *Session) guard(want Phase) error {
	switch {
	case s.phase.IsTerminal():
		return ErrSessionClosed
	case s.phase.IsInFlight():
		return ErrOperationInProgress
	case s.phase != want:
		return fmt.Errorf("%w: session is %s", ErrInvalidPhase, s.phase)
	}
	return nil
}

// touch expects s.mu to be held. Every change bumps the version so the
// store can refuse a state older than the one it holds.
func (s *Session) touch() {
	s.version++
	s.updatedAt = time.Now().UTC()
}

func (s *Session) event(eventType notifications.EventType) *notifications.EventBuilder {
	return notifications.NewEventBuilder(eventType, s.id, s.userID).
		WithShow(s.show.EventID, s.show.Date, s.show.Time)
}

// publish never fails the booking flow
func (s *Session) publish(ctx context.Context, b *notifications.EventBuilder) {
	event := b.Build()
	if err := s.deps.Publisher.Publish(ctx, event); err != nil {
		s.deps.Logger.WithError(err).WarnContext(ctx, "Failed to publish booking event",
			"type", string(event.Type), "session_id", s.id)
	}
}

func reservationRequest(eventID int64, selection []seats.Seat) reservations.CreateReservationRequest {
	return reservations.CreateReservationRequest{
		EventID: eventID,
		Seats: lo.Map(selection, func(seat seats.Seat, _ int) reservations.SeatRequest {
			return reservations.SeatRequest{
				ID:          seat.ID,
				RowName:     seat.RowName,
				SeatNumber:  seat.SeatNumber,
				SeatSection: seat.SeatSection,
				Price:       seat.Price,
				Status:      seat.Status.String(),
			}
		}),
	}
}

func seatIDs(list []seats.Seat) []int64 {
	return lo.Map(list, func(seat seats.Seat, _ int) int64 { return seat.ID })
}

func copyReservation(r *Reservation) *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	c.Seats = append([]seats.Seat(nil), r.Seats...)
	return &c
}
