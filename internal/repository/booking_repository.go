package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
)

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.BookingRequest, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return bookingToDomain(&model)
}

// List retrieves bookings with pagination, newest first. An empty status
// filters nothing.
func (r *GormBookingRepository) List(ctx context.Context, status booking.Status, page, limit int) ([]*booking.BookingRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*booking.BookingRequest, len(models))
	for i, m := range models {
		bk, err := bookingToDomain(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// ListAll retrieves every booking, newest first.
func (r *GormBookingRepository) ListAll(ctx context.Context) ([]*booking.BookingRequest, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*booking.BookingRequest, len(models))
	for i, m := range models {
		bk, err := bookingToDomain(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// Update persists the booking's status and action date. There is no
// version column; concurrent admin edits resolve last-write-wins.
func (r *GormBookingRepository) Update(ctx context.Context, bk *booking.BookingRequest) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", bk.ID()).
		Updates(map[string]interface{}{
			"status":      string(bk.Status()),
			"action_date": bk.ActionDate(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFound("booking", bk.ID().String())
	}
	return nil
}

// DeleteMany removes the given bookings in one statement.
func (r *GormBookingRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&BookingModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}
