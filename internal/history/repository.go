package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, record *ReservationRecord) error
	GetByReservationID(ctx context.Context, userID string, reservationID int64) (*ReservationRecord, error)
	ListByUser(ctx context.Context, userID string, query ListQuery) ([]ReservationRecord, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *ReservationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) GetByReservationID(ctx context.Context, userID string, reservationID int64) (*ReservationRecord, error) {
	var record ReservationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND reservation_id = ?", userID, reservationID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string, query ListQuery) ([]ReservationRecord, int64, error) {
	var records []ReservationRecord
	var totalCount int64

	baseQuery := r.db.WithContext(ctx).
		Model(&ReservationRecord{}).
		Where("user_id = ?", userID)

	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&records).Error

	return records, totalCount, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}

	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	return r.db.WithContext(ctx).
		Model(&ReservationRecord{}).
		Where("id = ?", id).
		Updates(updates).Error
}
