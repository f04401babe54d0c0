package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketfront/internal/seats"
	"ticketfront/internal/shared/constants"
	"ticketfront/pkg/cache"
)

// SessionState is the persisted form of a Session
type SessionState struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	Show        seats.ShowKey        `json:"show"`
	Phase       Phase                `json:"phase"`
	Selection   seats.SelectionState `json:"selection"`
	Reservation *Reservation         `json:"reservation,omitempty"`
	Version     int64                `json:"version"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// Store persists sessions between requests and process restarts. Save
// returns ErrStaleSession when the stored state has a higher version.
type Store interface {
	Load(ctx context.Context, id string) (*SessionState, error)
	Save(ctx context.Context, state *SessionState) error
	Delete(ctx context.Context, id string) error
}

type cacheStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewCacheStore keeps sessions in the cache, each expiring ttl after its last change
func NewCacheStore(cacheService cache.Service, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = constants.TTL_SESSION_DEFAULT
	}
	return &cacheStore{cache: cacheService, ttl: ttl}
}

func (s *cacheStore) Load(ctx context.Context, id string) (*SessionState, error) {
	var state SessionState
	if err := s.cache.Get(ctx, constants.BuildBookingSessionKey(id), &state); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	return &state, nil
}

// Save checks the stored version before writing. The check and the write are
// not atomic across processes; sticky routing keeps one writer per session.
func (s *cacheStore) Save(ctx context.Context, state *SessionState) error {
	current, err := s.Load(ctx, state.ID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
	case err != nil:
		return err
	case current.Version > state.Version:
		return fmt.Errorf("%w: stored version %d, got %d", ErrStaleSession, current.Version, state.Version)
	}

	if err := s.cache.Set(ctx, constants.BuildBookingSessionKey(state.ID), state, s.ttl); err != nil {
		return fmt.Errorf("failed to save booking session: %w", err)
	}
	return nil
}

func (s *cacheStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, constants.BuildBookingSessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

// state captures the session. In-flight phases are stored as the phase
// they fall back to, so a restart never resumes half way through a call.
func (s *Session) state() *SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &SessionState{
		ID:          s.id,
		UserID:      s.userID,
		Show:        s.show,
		Phase:       s.phase.Stable(),
		Selection:   s.model.State(),
		Reservation: copyReservation(s.reserved),
		Version:     s.version,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
}

func restoreSession(state *SessionState, deps *Dependencies) (*Session, error) {
	phase := state.Phase.Stable()
	if !phase.IsValid() {
		return nil, fmt.Errorf("booking session %s has unknown phase %q", state.ID, state.Phase)
	}
	if phase != PhaseSelecting && state.Reservation == nil {
		return nil, fmt.Errorf("booking session %s is %s without a reservation", state.ID, phase)
	}

	s := newSession(state.ID, state.UserID, state.Show, deps)
	s.phase = phase
	s.model.Restore(state.Selection)
	s.reserved = copyReservation(state.Reservation)
	s.version = state.Version
	s.createdAt = state.CreatedAt
	s.updatedAt = state.UpdatedAt
	return s, nil
}
