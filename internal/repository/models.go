package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
)

// RequestModel is the GORM model for the pending-intake table.
type RequestModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FullName          string          `gorm:"not null;size:200"`
	Email             string          `gorm:"not null;size:320;index"`
	Phone             string          `gorm:"not null;size:50"`
	AccessOption      string          `gorm:"not null;size:30"`
	SelectedDates     json.RawMessage `gorm:"type:jsonb;not null"`
	SelectedTimeSlots json.RawMessage `gorm:"type:jsonb;not null"`
	SelectedEquipment json.RawMessage `gorm:"type:jsonb;not null"`
	Status            string          `gorm:"not null;size:30;index"`
	ActionDate        *time.Time      `gorm:""`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "booking_requests"
}

// BookingModel is the GORM model for the confirmed bookings table.
type BookingModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FullName          string          `gorm:"not null;size:200"`
	Email             string          `gorm:"not null;size:320;index"`
	Phone             string          `gorm:"not null;size:50"`
	AccessOption      string          `gorm:"not null;size:30"`
	SelectedDates     json.RawMessage `gorm:"type:jsonb;not null"`
	SelectedTimeSlots json.RawMessage `gorm:"type:jsonb;not null"`
	SelectedEquipment json.RawMessage `gorm:"type:jsonb;not null"`
	Status            string          `gorm:"not null;size:30;index"`
	ActionDate        *time.Time      `gorm:""`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "maker_lab_bookings"
}

// --- Conversion helpers ---

type recordColumns struct {
	ID                uuid.UUID
	FullName          string
	Email             string
	Phone             string
	AccessOption      string
	SelectedDates     json.RawMessage
	SelectedTimeSlots json.RawMessage
	SelectedEquipment json.RawMessage
	Status            string
	ActionDate        *time.Time
	CreatedAt         time.Time
}

func toColumns(b *booking.BookingRequest) (recordColumns, error) {
	dateStrings := make([]string, len(b.SelectedDates()))
	for i, d := range b.SelectedDates() {
		dateStrings[i] = d.Format(booking.DateLayout)
	}
	datesJSON, err := json.Marshal(dateStrings)
	if err != nil {
		return recordColumns{}, fmt.Errorf("failed to marshal selected dates: %w", err)
	}
	slotsJSON, err := json.Marshal(b.SelectedTimeSlots())
	if err != nil {
		return recordColumns{}, fmt.Errorf("failed to marshal selected time slots: %w", err)
	}
	equipmentJSON, err := json.Marshal(b.SelectedEquipment())
	if err != nil {
		return recordColumns{}, fmt.Errorf("failed to marshal selected equipment: %w", err)
	}

	contact := b.Contact()
	return recordColumns{
		ID:                b.ID(),
		FullName:          contact.FullName,
		Email:             contact.Email,
		Phone:             contact.Phone,
		AccessOption:      string(b.AccessOption()),
		SelectedDates:     datesJSON,
		SelectedTimeSlots: slotsJSON,
		SelectedEquipment: equipmentJSON,
		Status:            string(b.Status()),
		ActionDate:        b.ActionDate(),
		CreatedAt:         b.CreatedAt(),
	}, nil
}

func toDomain(c recordColumns) (*booking.BookingRequest, error) {
	var dateStrings []string
	if err := json.Unmarshal(c.SelectedDates, &dateStrings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selected dates: %w", err)
	}
	dates := make([]time.Time, len(dateStrings))
	for i, s := range dateStrings {
		d, err := time.ParseInLocation(booking.DateLayout, s, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", s, err)
		}
		dates[i] = d
	}

	var slots []string
	if err := json.Unmarshal(c.SelectedTimeSlots, &slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selected time slots: %w", err)
	}

	var equipment []string
	if err := json.Unmarshal(c.SelectedEquipment, &equipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selected equipment: %w", err)
	}

	status, err := booking.ParseStatus(c.Status)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBookingRequest(
		c.ID,
		booking.Contact{FullName: c.FullName, Email: c.Email, Phone: c.Phone},
		booking.AccessOption(c.AccessOption),
		dates,
		slots,
		equipment,
		status,
		c.ActionDate,
		c.CreatedAt,
	), nil
}

func requestToDomain(m *RequestModel) (*booking.BookingRequest, error) {
	return toDomain(recordColumns(*m))
}

func bookingToDomain(m *BookingModel) (*booking.BookingRequest, error) {
	return toDomain(recordColumns(*m))
}
