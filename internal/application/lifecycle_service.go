package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
	"github.com/rpl-maker-lab/service-booking/internal/notification"
)

// TransitionRequest carries an admin-requested status change. The
// effective date/time are optional except that scheduling requires a
// date; omitted parts default to the current clock.
type TransitionRequest struct {
	Status        string `json:"status" binding:"required"`
	EffectiveDate string `json:"effective_date"`
	EffectiveTime string `json:"effective_time"`
}

const effectiveTimeLayout = "15:04"

// LifecycleService governs status transitions on submitted bookings and
// the promotion/rejection of pending requests.
type LifecycleService struct {
	requests booking.RequestRepository
	bookings booking.BookingRepository
	mailer   notification.Mailer
	labInbox string
	logger   *zap.Logger
	now      func() time.Time
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	requests booking.RequestRepository,
	bookings booking.BookingRepository,
	mailer notification.Mailer,
	labInbox string,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		requests: requests,
		bookings: bookings,
		mailer:   mailer,
		labInbox: labInbox,
		logger:   logger,
		now:      time.Now,
	}
}

// ApplyTransition validates and applies a status change, persisting the
// new status and action date before any notification is attempted. The
// status email is best-effort: its failure is logged and returned as a
// warning, never rolling back the update.
func (s *LifecycleService) ApplyTransition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*BookingRequestDTO, string, error) {
	newStatus, err := booking.ParseStatus(req.Status)
	if err != nil {
		return nil, "", apperror.NewValidationMessage("status", err.Error())
	}
	if newStatus == booking.StatusScheduled && req.EffectiveDate == "" {
		return nil, "", apperror.NewValidationMessage("effective_date", "scheduling requires an effective date")
	}

	actionDate, err := s.combineEffective(req.EffectiveDate, req.EffectiveTime)
	if err != nil {
		return nil, "", err
	}

	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	from := bk.Status()
	if !from.IsRecommendedTransition(newStatus) {
		// The dashboard allows any admin-authorized move; keep a trace
		// of the unusual ones.
		s.logger.Warn("unusual status transition",
			zap.String("booking_id", id.String()),
			zap.String("from", from.String()),
			zap.String("to", newStatus.String()),
		)
	}

	if err := bk.ChangeStatus(newStatus, actionDate); err != nil {
		return nil, "", err
	}

	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, "", err
	}

	s.logger.Info("booking status updated",
		zap.String("booking_id", id.String()),
		zap.String("from", from.String()),
		zap.String("to", newStatus.String()),
		zap.Time("action_date", actionDate),
	)

	warning := s.sendStatusEmail(ctx, bk)

	dto := toBookingRequestDTO(bk)
	return &dto, warning, nil
}

// Promote approves a pending request, moving it into the bookings table.
// The record keeps status pending until the admin schedules it.
func (s *LifecycleService) Promote(ctx context.Context, requestID uuid.UUID) (*BookingRequestDTO, error) {
	promoted, err := s.requests.Promote(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking request promoted",
		zap.String("request_id", requestID.String()),
	)

	dto := toBookingRequestDTO(promoted)
	return &dto, nil
}

// Reject removes a pending request outright, notifying the visitor
// best-effort first. The delete proceeds regardless of email delivery.
func (s *LifecycleService) Reject(ctx context.Context, requestID uuid.UUID) (string, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return "", err
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return "", err
	}

	s.logger.Info("booking request rejected",
		zap.String("request_id", requestID.String()),
	)

	// Reuse the cancellation template: from the visitor's perspective a
	// rejected request is a cancelled booking.
	if err := req.ChangeStatus(booking.StatusCancelled, s.now()); err != nil {
		return "", nil
	}
	return s.sendStatusEmail(ctx, req), nil
}

// DeleteMany removes multiple bookings in one request.
func (s *LifecycleService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewValidationMessage("ids", "at least one booking id is required")
	}
	deleted, err := s.bookings.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.logger.Info("bookings deleted",
		zap.Int("requested", len(ids)),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}

// ListRequests returns paginated pending requests.
func (s *LifecycleService) ListRequests(ctx context.Context, page, limit int) ([]BookingRequestDTO, int64, error) {
	items, total, err := s.requests.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toBookingRequestDTOs(items), total, nil
}

// ListBookings returns paginated bookings, optionally filtered by status.
func (s *LifecycleService) ListBookings(ctx context.Context, statusFilter string, page, limit int) ([]BookingRequestDTO, int64, error) {
	var status booking.Status
	if statusFilter != "" {
		parsed, err := booking.ParseStatus(statusFilter)
		if err != nil {
			return nil, 0, apperror.NewValidationMessage("status", err.Error())
		}
		status = parsed
	}

	items, total, err := s.bookings.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toBookingRequestDTOs(items), total, nil
}

// Stats returns aggregate booking counts for the dashboard.
func (s *LifecycleService) Stats(ctx context.Context) (*StatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &StatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// combineEffective merges the optional effective date and time into one
// timestamp. Omitted parts default to the current date and clock time.
func (s *LifecycleService) combineEffective(dateStr, timeStr string) (time.Time, error) {
	now := s.now().UTC()

	day := now
	if dateStr != "" {
		parsed, err := time.ParseInLocation(booking.DateLayout, dateStr, time.UTC)
		if err != nil {
			return time.Time{}, apperror.NewValidationMessage("effective_date", fmt.Sprintf("%q is not a valid date (expected YYYY-MM-DD)", dateStr))
		}
		day = parsed
	}

	clock := now
	if timeStr != "" {
		parsed, err := time.Parse(effectiveTimeLayout, timeStr)
		if err != nil {
			return time.Time{}, apperror.NewValidationMessage("effective_time", fmt.Sprintf("%q is not a valid time (expected HH:MM)", timeStr))
		}
		clock = parsed
	}

	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}

func (s *LifecycleService) sendStatusEmail(ctx context.Context, bk *booking.BookingRequest) string {
	msg := notification.StatusEmail(bk, s.labInbox)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("status email failed",
			zap.String("booking_id", bk.ID().String()),
			zap.String("status", bk.Status().String()),
			zap.Error(err),
		)
		return "update succeeded, but the notification email could not be sent"
	}
	return ""
}
