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

// GormRequestRepository is the GORM-based implementation of RequestRepository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save persists a newly submitted request.
func (r *GormRequestRepository) Save(ctx context.Context, req *booking.BookingRequest) error {
	cols, err := toColumns(req)
	if err != nil {
		return fmt.Errorf("failed to convert request to model: %w", err)
	}
	model := RequestModel(cols)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save booking request: %w", err)
	}
	return nil
}

// FindByID retrieves a pending request by its unique identifier.
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.BookingRequest, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("booking request", id.String())
		}
		return nil, fmt.Errorf("failed to find booking request by ID: %w", err)
	}
	return requestToDomain(&model)
}

// List retrieves pending requests with pagination, newest first.
func (r *GormRequestRepository) List(ctx context.Context, page, limit int) ([]*booking.BookingRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RequestModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count booking requests: %w", err)
	}

	var models []RequestModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list booking requests: %w", err)
	}

	requests := make([]*booking.BookingRequest, len(models))
	for i, m := range models {
		req, err := requestToDomain(&m)
		if err != nil {
			return nil, 0, err
		}
		requests[i] = req
	}
	return requests, total, nil
}

// Delete removes a pending request outright.
func (r *GormRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RequestModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFound("booking request", id.String())
	}
	return nil
}

// Promote atomically moves a request into the bookings table. The copy
// and delete happen in one transaction, standing in for the hosted
// store's promotion procedure.
func (r *GormRequestRepository) Promote(ctx context.Context, id uuid.UUID) (*booking.BookingRequest, error) {
	var promoted BookingModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model RequestModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound("booking request", id.String())
			}
			return fmt.Errorf("failed to load booking request: %w", err)
		}

		promoted = BookingModel(model)
		if err := tx.Create(&promoted).Error; err != nil {
			return fmt.Errorf("failed to insert promoted booking: %w", err)
		}
		if err := tx.Delete(&RequestModel{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to remove promoted request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookingToDomain(&promoted)
}
