package booking

import (
	"context"
	"sync"
	"time"

	"ticketfront/internal/history"
	"ticketfront/internal/notifications"
	"ticketfront/internal/payments"
	"ticketfront/internal/seats"
	"ticketfront/internal/shared/constants"
	"ticketfront/pkg/logger"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Ledger keeps finished bookings for the "my reservations" page
type Ledger interface {
	Record(ctx context.Context, input history.RecordInput) error
}

// Manager owns the booking sessions of this process and persists every
// change to the store. Sessions live in memory while in use so that
// concurrent requests for one session share its phase guard.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	deps   *Dependencies
	store  Store
	ledger Ledger
	ttl    time.Duration
	now    func() time.Time
	done   chan struct{}
	once   sync.Once
}

// NewManager builds a session manager. ledger may be nil.
func NewManager(deps *Dependencies, store Store, ledger Ledger, ttl time.Duration) *Manager {
	if deps.MaxSeats <= 0 {
		deps.MaxSeats = seats.DefaultMaxSelection
	}
	if deps.Publisher == nil {
		deps.Publisher = notifications.NoopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	if ttl <= 0 {
		ttl = constants.TTL_SESSION_DEFAULT
	}
	return &Manager{
		sessions: make(map[string]*Session),
		deps:     deps,
		store:    store,
		ledger:   ledger,
		ttl:      ttl,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start opens a session for a show with a freshly fetched seat map
func (m *Manager) Start(ctx context.Context, userID string, show seats.ShowKey) (*Session, error) {
	snapshot, err := m.deps.Inventory.FetchSeats(ctx, show)
	if err != nil {
		return nil, err
	}

	s := newSession(uuid.NewString(), userID, show, m.deps)
	s.model.Replace(snapshot)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	m.persist(ctx, s)

	m.deps.Logger.LogSessionStarted(ctx, s.id, show.EventID, show.Date, show.Time, len(snapshot))
	s.publish(ctx, s.event(notifications.EventTypeSessionStarted))
	return s, nil
}

// Get returns the session if it belongs to userID
func (m *Manager) Get(ctx context.Context, userID, id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		state, err := m.store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		restored, err := restoreSession(state, m.deps)
		if err != nil {
			m.deps.Logger.WithError(err).WarnContext(ctx, "Discarding unreadable booking session", "session_id", id)
			if err := m.store.Delete(ctx, id); err != nil {
				m.deps.Logger.WithError(err).WarnContext(ctx, "Failed to delete booking session", "session_id", id)
			}
			return nil, ErrSessionNotFound
		}

		m.mu.Lock()
		if existing, ok := m.sessions[id]; ok {
			s = existing
		} else {
			m.sessions[id] = restored
			s = restored
		}
		m.mu.Unlock()
	}

	if s.userID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Toggle(ctx context.Context, userID, id string, seatID int64) (*Session, error) {
	s, err := m.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.Toggle(seatID); err != nil {
		return s, err
	}
	m.persist(ctx, s)
	return s, nil
}

func (m *Manager) Refresh(ctx context.Context, userID, id string) (*Session, []seats.Seat, error) {
	s, err := m.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	dropped, err := s.Refresh(ctx)
	if isRejection(err) {
		return s, nil, err
	}
	m.persist(ctx, s)
	return s, dropped, err
}

func (m *Manager) Submit(ctx context.Context, userID, id string) (*Session, *Reservation, error) {
	s, err := m.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	reservation, err := s.Submit(ctx)
	if isRejection(err) {
		return s, nil, err
	}
	m.persist(ctx, s)
	return s, reservation, err
}

func (m *Manager) Pay(ctx context.Context, userID, id string, method payments.Method) (*Session, error) {
	s, err := m.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.Pay(ctx, method); err != nil {
		if !isRejection(err) {
			m.persist(ctx, s)
		}
		return s, err
	}
	m.finish(ctx, s)
	return s, nil
}

func (m *Manager) CancelPayment(ctx context.Context, userID, id string, method payments.Method) (*Session, error) {
	s, err := m.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.CancelPayment(ctx, method); err != nil {
		if !isRejection(err) {
			m.persist(ctx, s)
		}
		return s, err
	}
	m.finish(ctx, s)
	return s, nil
}

// persist writes the session to the store. A failed write is logged and the
// in-memory session stays authoritative for this process. Callers skip it for
// rejected operations: a session rejects while another call is in flight, and
// its state at that moment is only the rollback point of that call.
func (m *Manager) persist(ctx context.Context, s *Session) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := m.store.Save(ctx, s.state()); err != nil {
		m.deps.Logger.WithError(err).WarnContext(ctx, "Failed to persist booking session", "session_id", s.id)
	}
}

// finish records a session that just reached a terminal phase. The ended
// session stays readable until it expires from the store.
func (m *Manager) finish(ctx context.Context, s *Session) {
	m.persist(ctx, s)
	if m.ledger == nil {
		return
	}

	state := s.state()
	input := history.RecordInput{
		UserID:    state.UserID,
		SessionID: state.ID,
		EventID:   state.Show.EventID,
		ShowDate:  state.Show.Date,
		ShowTime:  state.Show.Time,
		Status:    history.StatusPaid,
	}
	if state.Phase == PhaseCancelled {
		input.Status = history.StatusPaymentCancelled
	}
	if r := state.Reservation; r != nil {
		input.ReservationID = r.ID
		input.Total = r.Total
		input.PaymentMethod = r.PaymentMethod.String()
		input.Seats = lo.Map(r.Seats, func(seat seats.Seat, _ int) history.SeatLine {
			return history.SeatLine{
				ID:          seat.ID,
				RowName:     seat.RowName,
				SeatNumber:  seat.SeatNumber,
				SeatSection: seat.SeatSection,
				Floor:       seat.Floor,
				Price:       seat.Price,
			}
		})
	}

	if err := m.ledger.Record(ctx, input); err != nil {
		m.deps.Logger.ErrorWithContext(ctx, "Failed to record finished booking", err, map[string]interface{}{
			"session_id":     state.ID,
			"reservation_id": input.ReservationID,
		})
	}
}

// Sweep drops sessions idle for longer than the ttl from memory. They stay
// loadable from the store until it expires them too.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := !s.phase.IsInFlight() && s.updatedAt.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of sessions held in memory
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartJanitor sweeps idle sessions every interval until ctx ends or Stop is called
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					m.deps.Logger.DebugContext(ctx, "Evicted idle booking sessions", "count", n)
				}
			case <-m.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) Stop() {
	m.once.Do(func() { close(m.done) })
}
