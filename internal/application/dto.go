package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
)

// BookingRequestDTO is the response representation of a booking request,
// shared by the intake and lifecycle endpoints.
type BookingRequestDTO struct {
	ID                uuid.UUID  `json:"id"`
	FullName          string     `json:"full_name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	AccessOption      string     `json:"access_option"`
	SelectedDates     []string   `json:"selected_dates"`
	SelectedTimeSlots []string   `json:"selected_time_slots"`
	SelectedEquipment []string   `json:"selected_equipment"`
	Status            string     `json:"status"`
	ActionDate        *time.Time `json:"action_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// SlotAvailabilityDTO is a catalog slot with its disabled flag for the
// current date selection.
type SlotAvailabilityDTO struct {
	Label    string `json:"label"`
	Weekday  string `json:"weekday"`
	Disabled bool   `json:"disabled"`
}

// StatsDTO holds booking counts for the admin dashboard.
type StatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

func toBookingRequestDTO(b *booking.BookingRequest) BookingRequestDTO {
	dates := make([]string, len(b.SelectedDates()))
	for i, d := range b.SelectedDates() {
		dates[i] = d.Format(booking.DateLayout)
	}
	contact := b.Contact()
	return BookingRequestDTO{
		ID:                b.ID(),
		FullName:          contact.FullName,
		Email:             contact.Email,
		Phone:             contact.Phone,
		AccessOption:      string(b.AccessOption()),
		SelectedDates:     dates,
		SelectedTimeSlots: b.SelectedTimeSlots(),
		SelectedEquipment: b.SelectedEquipment(),
		Status:            string(b.Status()),
		ActionDate:        b.ActionDate(),
		CreatedAt:         b.CreatedAt(),
	}
}

func toBookingRequestDTOs(items []*booking.BookingRequest) []BookingRequestDTO {
	dtos := make([]BookingRequestDTO, len(items))
	for i, b := range items {
		dtos[i] = toBookingRequestDTO(b)
	}
	return dtos
}
