package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
	"github.com/rpl-maker-lab/service-booking/internal/notification"
)

// ContactMessage is a visitor message for the lab inbox.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// IntakeService handles the visitor-facing flows: catalog exposure, slot
// availability, booking submission, and the contact form.
type IntakeService struct {
	requests booking.RequestRepository
	catalog  booking.Catalog
	policy   booking.Policy
	mailer   notification.Mailer
	labInbox string
	logger   *zap.Logger
	now      func() time.Time
}

// NewIntakeService creates a new IntakeService.
func NewIntakeService(
	requests booking.RequestRepository,
	catalog booking.Catalog,
	policy booking.Policy,
	mailer notification.Mailer,
	labInbox string,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		requests: requests,
		catalog:  catalog,
		policy:   policy,
		mailer:   mailer,
		labInbox: labInbox,
		logger:   logger,
		now:      time.Now,
	}
}

// TimeSlots returns the fixed time slot catalog.
func (s *IntakeService) TimeSlots() []booking.TimeSlot {
	return s.catalog.Slots
}

// Equipment returns the fixed equipment catalog.
func (s *IntakeService) Equipment() []string {
	return s.catalog.Equipment
}

// SlotAvailability returns every catalog slot with its disabled flag for
// the given date selection, so the form can narrow choices progressively.
func (s *IntakeService) SlotAvailability(rawDates []string) ([]SlotAvailabilityDTO, error) {
	dates := make([]time.Time, 0, len(rawDates))
	for _, raw := range rawDates {
		d, err := time.ParseInLocation(booking.DateLayout, raw, time.UTC)
		if err != nil {
			return nil, apperror.NewValidationMessage("dates", fmt.Sprintf("%q is not a valid date (expected YYYY-MM-DD)", raw))
		}
		dates = append(dates, d)
	}

	out := make([]SlotAvailabilityDTO, len(s.catalog.Slots))
	for i, slot := range s.catalog.Slots {
		out[i] = SlotAvailabilityDTO{
			Label:    slot.Label,
			Weekday:  slot.Weekday.String(),
			Disabled: booking.IsSlotDisabled(slot, dates),
		}
	}
	return out, nil
}

// SubmitRequest validates a draft and persists it as a pending request.
// The "request received" email is best-effort: a delivery failure is
// logged and returned as a warning without failing the submission.
func (s *IntakeService) SubmitRequest(ctx context.Context, draft booking.SubmissionDraft) (*BookingRequestDTO, string, error) {
	req, err := booking.ValidateSubmission(draft, s.catalog, s.policy, s.now())
	if err != nil {
		return nil, "", err
	}

	if err := s.requests.Save(ctx, req); err != nil {
		return nil, "", fmt.Errorf("failed to save booking request: %w", err)
	}

	s.logger.Info("booking request submitted",
		zap.String("request_id", req.ID().String()),
		zap.String("access_option", string(req.AccessOption())),
	)

	warning := s.sendStatusEmail(ctx, req)

	dto := toBookingRequestDTO(req)
	return &dto, warning, nil
}

// SendContactMessage relays a contact-form message to the lab inbox.
// Unlike status emails there is no state mutation to protect, so a
// provider failure is surfaced to the visitor.
func (s *IntakeService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	var fields []apperror.FieldError
	if strings.TrimSpace(msg.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(msg.Email) == "" {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "email is required"})
	}
	if strings.TrimSpace(msg.Subject) == "" {
		fields = append(fields, apperror.FieldError{Field: "subject", Message: "subject is required"})
	}
	if strings.TrimSpace(msg.Message) == "" {
		fields = append(fields, apperror.FieldError{Field: "message", Message: "message is required"})
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields...)
	}

	email := notification.ContactEmail(s.labInbox, msg.Name, msg.Email, msg.Subject, msg.Message)
	if err := s.mailer.Send(ctx, email); err != nil {
		s.logger.Error("failed to relay contact message", zap.Error(err))
		return fmt.Errorf("failed to relay contact message: %w", err)
	}
	return nil
}

func (s *IntakeService) sendStatusEmail(ctx context.Context, req *booking.BookingRequest) string {
	msg := notification.StatusEmail(req, s.labInbox)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("confirmation email failed",
			zap.String("request_id", req.ID().String()),
			zap.Error(err),
		)
		return "request saved, but the confirmation email could not be sent"
	}
	return ""
}
