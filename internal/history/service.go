package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ticketfront/internal/notifications"
	"ticketfront/internal/reservations"
	"ticketfront/internal/shared/constants"
	"ticketfront/pkg/cache"
	"ticketfront/pkg/logger"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotCancellable      = errors.New("reservation cannot be cancelled")
	ErrInvalidRecord       = errors.New("invalid reservation record")
)

type Service interface {
	// Record stores a booking session that reached PAID or CANCELLED
	Record(ctx context.Context, input RecordInput) error
	ListUserReservations(ctx context.Context, userID string, query ListQuery) (*ListResponse, error)
	CancelReservation(ctx context.Context, userID string, reservationID int64) (*RecordResponse, error)
}

type service struct {
	repo         Repository
	reservations reservations.Client
	publisher    notifications.Publisher
	cacheService cache.Service
	logger       *logger.Logger
}

// NewService builds the ledger service. cacheService may be nil.
func NewService(repo Repository, reservationClient reservations.Client, publisher notifications.Publisher, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		reservations: reservationClient,
		publisher:    publisher,
		cacheService: cacheService,
		logger:       logger.GetDefault(),
	}
}

func (s *service) Record(ctx context.Context, input RecordInput) error {
	if input.UserID == "" || input.SessionID == "" || !input.Status.IsValid() {
		return ErrInvalidRecord
	}

	record := &ReservationRecord{
		UserID:        input.UserID,
		SessionID:     input.SessionID,
		ReservationID: input.ReservationID,
		EventID:       input.EventID,
		ShowDate:      input.ShowDate,
		ShowTime:      input.ShowTime,
		Seats:         input.Seats,
		SeatCount:     len(input.Seats),
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
	}
	if input.Status == StatusPaymentCancelled {
		now := time.Now().UTC()
		record.CancelledAt = &now
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to record reservation: %w", err)
	}

	s.invalidateUserCache(ctx, input.UserID)
	return nil
}

func (s *service) ListUserReservations(ctx context.Context, userID string, query ListQuery) (*ListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	load := func() (interface{}, error) {
		records, total, err := s.repo.ListByUser(ctx, userID, query)
		if err != nil {
			return nil, fmt.Errorf("failed to list reservations: %w", err)
		}

		resp := &ListResponse{
			Reservations: make([]RecordResponse, 0, len(records)),
			TotalCount:   total,
			Page:         query.Page,
			Limit:        query.Limit,
		}
		for i := range records {
			resp.Reservations = append(resp.Reservations, toRecordResponse(&records[i]))
		}
		return resp, nil
	}

	// Status filtered pages are not cached
	if s.cacheService == nil || query.Status != "" {
		data, err := load()
		if err != nil {
			return nil, err
		}
		return data.(*ListResponse), nil
	}

	var resp ListResponse
	key := constants.BuildUserReservationsKey(userID, query.Page, query.Limit)
	if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_USER_RESERVATIONS, load, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) CancelReservation(ctx context.Context, userID string, reservationID int64) (*RecordResponse, error) {
	record, err := s.repo.GetByReservationID(ctx, userID, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	if !record.Status.CanBeCancelled() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, record.Status)
	}

	if err := s.reservations.Cancel(ctx, reservationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, record.ID, StatusCancelled, &now); err != nil {
		// The reservation API already released the seats; the ledger is behind
		s.logger.ErrorWithContext(ctx, "Failed to mark reservation cancelled", err, map[string]interface{}{
			"reservation_id": reservationID,
			"user_id":        userID,
		})
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	record.Status = StatusCancelled
	record.CancelledAt = &now

	s.invalidateUserCache(ctx, userID)

	event := notifications.NewEventBuilder(notifications.EventTypeReservationRevoked, record.SessionID, userID).
		WithShow(record.EventID, record.ShowDate, record.ShowTime).
		WithReservation(reservationID).
		WithSeats(seatIDs(record.Seats), record.Total).
		Build()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WarnContext(ctx, "Failed to publish booking event",
			"type", string(event.Type), "reservation_id", strconv.FormatInt(reservationID, 10))
	}

	resp := toRecordResponse(record)
	return &resp, nil
}

func (s *service) invalidateUserCache(ctx context.Context, userID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.BuildUserReservationsPattern(userID)); err != nil {
		s.logger.WithError(err).WarnContext(ctx, "Failed to invalidate reservation history cache", "user_id", userID)
	}
}

func seatIDs(seats []SeatLine) []int64 {
	return lo.Map(seats, func(seat SeatLine, _ int) int64 { return seat.ID })
}
