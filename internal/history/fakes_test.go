package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"ticketfront/internal/notifications"
	"ticketfront/internal/reservations"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memoryRepository struct {
	mu      sync.Mutex
	records []ReservationRecord
	clock   time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{clock: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (r *memoryRepository) Create(_ context.Context, record *ReservationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Minute)
	record.CreatedAt = r.clock
	record.UpdatedAt = r.clock
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryRepository) GetByReservationID(_ context.Context, userID string, reservationID int64) (*ReservationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].UserID == userID && r.records[i].ReservationID == reservationID {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string, query ListQuery) ([]ReservationRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []ReservationRecord
	for _, rec := range r.records {
		if rec.UserID == userID && (query.Status == "" || string(rec.Status) == query.Status) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (query.Page - 1) * query.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Status = status
			r.records[i].CancelledAt = cancelledAt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeReservations struct {
	cancelled []int64
	err       error
}

func (f *fakeReservations) Create(context.Context, reservations.CreateReservationRequest) (*reservations.CreateReservationResponse, error) {
	return nil, nil
}

func (f *fakeReservations) Cancel(_ context.Context, reservationID int64) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, reservationID)
	return nil
}

type recordingPublisher struct {
	events []*notifications.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *notifications.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
