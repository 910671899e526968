package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
)

const (
	displayDateLayout     = "Monday, January 2, 2006"
	displayDateTimeLayout = "Monday, January 2, 2006 at 3:04 PM"
)

// StatusEmail composes the status-update message for a booking. The
// contact email appears in the footer so visitors always have a human to
// reach.
func StatusEmail(bk *booking.BookingRequest, contactEmail string) Message {
	dates := formatDates(bk.SelectedDates())
	slots := strings.Join(bk.SelectedTimeSlots(), ", ")
	equipment := strings.Join(bk.SelectedEquipment(), ", ")
	name := bk.Contact().FullName

	var scheduledFor string
	if bk.ActionDate() != nil {
		scheduledFor = bk.ActionDate().Format(displayDateTimeLayout)
	}

	return Message{
		To:      bk.Contact().Email,
		Subject: statusSubject(bk.Status(), scheduledFor),
		Body:    statusBody(bk.Status(), name, scheduledFor, dates, slots, equipment, contactEmail),
	}
}

// ContactEmail composes the contact-form relay to the lab inbox, with
// reply-to set to the visitor so staff can answer directly.
func ContactEmail(labInbox, visitorName, visitorEmail, subject, message string) Message {
	body := fmt.Sprintf("From: %s <%s>\n\n%s", visitorName, visitorEmail, message)
	return Message{
		To:      labInbox,
		ReplyTo: visitorEmail,
		Subject: "Maker Lab Contact: " + subject,
		Body:    body,
	}
}

func statusSubject(status booking.Status, scheduledFor string) string {
	switch status {
	case booking.StatusPending:
		return "Maker Lab Booking Confirmation - Request Received"
	case booking.StatusScheduled:
		if scheduledFor != "" {
			return "Maker Lab Appointment Scheduled - " + scheduledFor
		}
		return "Maker Lab Appointment Scheduled"
	case booking.StatusMissed:
		return "Maker Lab Appointment - Marked as Missed"
	case booking.StatusCancelled:
		return "Maker Lab Appointment Cancelled"
	default:
		return "Maker Lab Booking Update"
	}
}

func statusBody(status booking.Status, name, scheduledFor, dates, slots, equipment, contactEmail string) string {
	reminder := fmt.Sprintf(`

Important Reminders:
- You must confirm your appointment 24 hours prior to your scheduled time, or your appointment will be cancelled and you will need to reschedule
- Appointments will be considered missed and cancelled 15 minutes after the scheduled time

Questions? Contact us at %s`, contactEmail)

	signature := "\n\nBest regards,\nMaker Lab Team"

	switch status {
	case booking.StatusPending:
		return fmt.Sprintf(`Dear %s,

Thank you for submitting your Maker Lab booking request. We have received your application and it is currently being reviewed.

Booking Details:
- Dates Requested: %s
- Time Slots: %s
- Equipment: %s

You will receive another email once your booking has been scheduled or if we need additional information.%s%s`,
			name, dates, slots, equipment, reminder, signature)

	case booking.StatusScheduled:
		return fmt.Sprintf(`Dear %s,

Great news! Your Maker Lab appointment has been scheduled.

Appointment Details:
- Date & Time: %s
- Equipment: %s
- Duration: 2 hours

IMPORTANT - CONFIRMATION REQUIRED:
You must confirm your appointment 24 hours prior to your scheduled time, or your appointment will be cancelled and you will need to reschedule.%s%s`,
			name, scheduledFor, equipment, reminder, signature)

	case booking.StatusMissed:
		return fmt.Sprintf(`Dear %s,

Your Maker Lab appointment scheduled for %s has been marked as missed.

This typically occurs when:
- No confirmation was received 24 hours prior to the appointment
- You did not arrive within 15 minutes of your scheduled time

To schedule a new appointment, please submit a new booking request through our system.

Questions? Contact us at %s%s`,
			name, firstNonEmpty(scheduledFor, dates), contactEmail, signature)

	case booking.StatusCancelled:
		return fmt.Sprintf(`Dear %s,

Your Maker Lab appointment scheduled for %s has been cancelled.

If you would like to reschedule, please submit a new booking request through our system.

Questions? Contact us at %s%s`,
			name, firstNonEmpty(scheduledFor, dates), contactEmail, signature)

	default:
		return fmt.Sprintf(`Dear %s,

Your Maker Lab booking status has been updated to: %s

Questions? Contact us at %s%s`,
			name, status, contactEmail, signature)
	}
}

func formatDates(dates []time.Time) string {
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(displayDateLayout)
	}
	return strings.Join(formatted, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
