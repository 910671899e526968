package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
)

// Contact holds the visitor's contact details.
type Contact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// BookingRequest is the aggregate root for the booking domain. The same
// shape serves both the pending-intake table and the confirmed bookings
// table; only the lifecycle service mutates its status.
type BookingRequest struct {
	id                uuid.UUID
	contact           Contact
	accessOption      AccessOption
	selectedDates     []time.Time
	selectedTimeSlots []string
	selectedEquipment []string
	status            Status
	actionDate        *time.Time
	createdAt         time.Time
}

// newBookingRequest assembles a validated pending request. Callers go
// through ValidateSubmission, which enforces the intake rules first.
func newBookingRequest(
	contact Contact,
	accessOption AccessOption,
	selectedDates []time.Time,
	selectedTimeSlots []string,
	selectedEquipment []string,
	now time.Time,
) *BookingRequest {
	return &BookingRequest{
		id:                uuid.New(),
		contact:           contact,
		accessOption:      accessOption,
		selectedDates:     selectedDates,
		selectedTimeSlots: selectedTimeSlots,
		selectedEquipment: selectedEquipment,
		status:            StatusPending,
		createdAt:         now.UTC(),
	}
}

// ReconstructBookingRequest rebuilds a BookingRequest from persistence
// data (no validation).
func ReconstructBookingRequest(
	id uuid.UUID,
	contact Contact,
	accessOption AccessOption,
	selectedDates []time.Time,
	selectedTimeSlots []string,
	selectedEquipment []string,
	status Status,
	actionDate *time.Time,
	createdAt time.Time,
) *BookingRequest {
	return &BookingRequest{
		id:                id,
		contact:           contact,
		accessOption:      accessOption,
		selectedDates:     selectedDates,
		selectedTimeSlots: selectedTimeSlots,
		selectedEquipment: selectedEquipment,
		status:            status,
		actionDate:        actionDate,
		createdAt:         createdAt,
	}
}

// ID returns the booking's unique identifier.
func (b *BookingRequest) ID() uuid.UUID { return b.id }

// Contact returns the visitor's contact details.
func (b *BookingRequest) Contact() Contact { return b.contact }

// AccessOption returns the kind of visit requested. Immutable after creation.
func (b *BookingRequest) AccessOption() AccessOption { return b.accessOption }

// SelectedDates returns the requested calendar dates in selection order.
func (b *BookingRequest) SelectedDates() []time.Time { return b.selectedDates }

// SelectedTimeSlots returns the requested time slot labels.
func (b *BookingRequest) SelectedTimeSlots() []string { return b.selectedTimeSlots }

// SelectedEquipment returns the requested equipment names.
func (b *BookingRequest) SelectedEquipment() []string { return b.selectedEquipment }

// Status returns the current lifecycle status.
func (b *BookingRequest) Status() Status { return b.status }

// ActionDate returns the admin-chosen effective time of the last status
// change, or nil while the request is still pending.
func (b *BookingRequest) ActionDate() *time.Time { return b.actionDate }

// CreatedAt returns the submission timestamp.
func (b *BookingRequest) CreatedAt() time.Time { return b.createdAt }

// ChangeStatus applies an admin-authorized status change with the given
// effective time. Any valid status is accepted; whether the move follows
// the recommended flow is the caller's concern to log, not this method's
// to reject.
func (b *BookingRequest) ChangeStatus(newStatus Status, actionDate time.Time) error {
	if !newStatus.IsValid() {
		return apperror.NewValidationMessage("status", "unknown status: "+newStatus.String())
	}
	if actionDate.Before(b.createdAt) {
		return apperror.NewValidationMessage("action_date", "action date cannot be before the submission date")
	}
	ad := actionDate.UTC()
	b.status = newStatus
	b.actionDate = &ad
	return nil
}
