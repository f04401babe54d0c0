package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ticketfront/internal/history"
	"ticketfront/internal/notifications"
	"ticketfront/internal/payments"
	"ticketfront/internal/reservations"
	"ticketfront/internal/seats"
	"ticketfront/internal/upstream"
	"ticketfront/pkg/logger"
)

var errUpstreamDown = errors.New("connection refused")

func seat(id int64, price int64, status seats.Status) seats.Seat {
	return seats.Seat{
		ID:          id,
		RowName:     "A",
		SeatNumber:  int(id),
		SeatSection: "R",
		Floor:       "1",
		Price:       price,
		Status:      status,
	}
}

var testShow = seats.ShowKey{EventID: 7, Date: "2026-11-20", Time: "19:30"}

// fakeInventory serves maps in order; the last one repeats
type fakeInventory struct {
	mu    sync.Mutex
	maps  [][]seats.Seat
	err   error
	calls int
	gate  chan struct{}
}

func newFakeInventory(maps ...[]seats.Seat) *fakeInventory {
	return &fakeInventory{maps: maps}
}

func (f *fakeInventory) FetchSeats(ctx context.Context, show seats.ShowKey) ([]seats.Seat, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, fmt.Errorf("%w: %w", seats.ErrSeatFetchFailed, f.err)
	}
	i := f.calls - 1
	if i >= len(f.maps) {
		i = len(f.maps) - 1
	}
	return append([]seats.Seat(nil), f.maps[i]...), nil
}

func (f *fakeInventory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeReservations struct {
	mu       sync.Mutex
	nextID   int64
	err      error
	requests []reservations.CreateReservationRequest
	gate     chan struct{}
	entered  chan struct{}
}

func (f *fakeReservations) Create(ctx context.Context, req reservations.CreateReservationRequest) (*reservations.CreateReservationResponse, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, fmt.Errorf("%w: %w", reservations.ErrCreateFailed, f.err)
	}
	f.nextID++
	return &reservations.CreateReservationResponse{ID: 900 + f.nextID}, nil
}

func (f *fakeReservations) Cancel(context.Context, int64) error {
	return nil
}

func (f *fakeReservations) Requests() []reservations.CreateReservationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reservations.CreateReservationRequest(nil), f.requests...)
}

type paymentCall struct {
	Kind          string
	ReservationID int64
	Method        payments.Method
	Price         int64
}

type fakePayments struct {
	mu    sync.Mutex
	err   error
	calls []paymentCall
}

func (f *fakePayments) Pay(_ context.Context, reservationID int64, method payments.Method) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, paymentCall{Kind: "pay", ReservationID: reservationID, Method: method})
	return f.err
}

func (f *fakePayments) Cancel(_ context.Context, reservationID int64, method payments.Method, price int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, paymentCall{Kind: "cancel", ReservationID: reservationID, Method: method, Price: price})
	return f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*notifications.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *notifications.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []notifications.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]notifications.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type recordingLedger struct {
	mu      sync.Mutex
	records []history.RecordInput
}

func (l *recordingLedger) Record(_ context.Context, input history.RecordInput) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, input)
	return nil
}

type fixture struct {
	inventory    *fakeInventory
	reservations *fakeReservations
	payments     *fakePayments
	publisher    *recordingPublisher
	deps         *Dependencies
}

func newFixture(maps ...[]seats.Seat) *fixture {
	f := &fixture{
		inventory:    newFakeInventory(maps...),
		reservations: &fakeReservations{},
		payments:     &fakePayments{},
		publisher:    &recordingPublisher{},
	}
	f.deps = &Dependencies{
		Inventory:    f.inventory,
		Reservations: f.reservations,
		Payments:     f.payments,
		Publisher:    f.publisher,
		Logger:       logger.Discard(),
		MaxSeats:     seats.DefaultMaxSelection,
	}
	return f
}

// session builds a SELECTING session loaded with the first map
func (f *fixture) session() *Session {
	snapshot, err := f.inventory.FetchSeats(context.Background(), testShow)
	if err != nil {
		panic(err)
	}
	s := newSession("s-1", "user-1", testShow, f.deps)
	s.model.Replace(snapshot)
	return s
}

func authed() context.Context {
	return upstream.WithToken(context.Background(), "token-abc")
}

// gatedStore holds every Save while hold is set
type gatedStore struct {
	Store
	mu    sync.Mutex
	hold  chan struct{}
	saves int
}

func (g *gatedStore) Save(ctx context.Context, state *SessionState) error {
	g.mu.Lock()
	hold := g.hold
	g.saves++
	g.mu.Unlock()
	if hold != nil {
		<-hold
	}
	return g.Store.Save(ctx, state)
}

func (g *gatedStore) Hold() chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hold = make(chan struct{})
	return g.hold
}

func (g *gatedStore) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hold != nil {
		close(g.hold)
		g.hold = nil
	}
}

func (g *gatedStore) Saves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}
