package booking

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository is the persistence contract for the pending-intake
// table. Rejection is a hard delete; approval moves the row into the
// bookings table through Promote, which the store performs atomically.
type RequestRepository interface {
	// Save persists a newly submitted request.
	Save(ctx context.Context, req *BookingRequest) error

	// FindByID retrieves a pending request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*BookingRequest, error)

	// List retrieves pending requests with pagination, newest first.
	List(ctx context.Context, page, limit int) ([]*BookingRequest, int64, error)

	// Delete removes a pending request outright.
	Delete(ctx context.Context, id uuid.UUID) error

	// Promote atomically moves a request into the bookings table and
	// returns the promoted booking.
	Promote(ctx context.Context, id uuid.UUID) (*BookingRequest, error)
}

// BookingRepository is the persistence contract for confirmed bookings.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*BookingRequest, error)

	// List retrieves bookings with pagination, newest first. An empty
	// status filters nothing.
	List(ctx context.Context, status Status, page, limit int) ([]*BookingRequest, int64, error)

	// ListAll retrieves every booking, newest first (exports).
	ListAll(ctx context.Context) ([]*BookingRequest, error)

	// Update persists the booking's status and action date. Last write
	// wins; the store provides no version guard and none is added here.
	Update(ctx context.Context, booking *BookingRequest) error

	// DeleteMany removes the given bookings in one statement and returns
	// the number of rows removed.
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
