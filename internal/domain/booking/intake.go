package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SubmissionDraft is the raw visitor input before validation.
type SubmissionDraft struct {
	FullName          string   `json:"full_name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	AccessOption      string   `json:"access_option"`
	SelectedDates     []string `json:"selected_dates"`
	SelectedTimeSlots []string `json:"selected_time_slots"`
	SelectedEquipment []string `json:"selected_equipment"`
}

// DeriveOpenWeekdays maps the selected dates to their weekday set. Used
// only for slot filtering; duplicates collapse by set semantics.
func DeriveOpenWeekdays(selectedDates []time.Time) map[time.Weekday]bool {
	weekdays := make(map[time.Weekday]bool, len(selectedDates))
	for _, d := range selectedDates {
		weekdays[d.Weekday()] = true
	}
	return weekdays
}

// IsSlotDisabled reports whether a catalog slot should be presented as
// disabled for the given date selection. With no dates selected yet,
// nothing is disabled, so the visitor can explore freely.
func IsSlotDisabled(slot TimeSlot, selectedDates []time.Time) bool {
	if len(selectedDates) == 0 {
		return false
	}
	return !DeriveOpenWeekdays(selectedDates)[slot.Weekday]
}

// ValidateSubmission checks a draft against the catalog and policy,
// collecting every failing rule so the visitor can correct the whole form
// in one pass. On success it returns a normalized pending request with
// createdAt set to now.
func ValidateSubmission(draft SubmissionDraft, catalog Catalog, policy Policy, now time.Time) (*BookingRequest, error) {
	var fields []apperror.FieldError
	fail := func(field, message string) {
		fields = append(fields, apperror.FieldError{Field: field, Message: message})
	}

	contact := Contact{
		FullName: strings.TrimSpace(draft.FullName),
		Email:    strings.TrimSpace(draft.Email),
		Phone:    strings.TrimSpace(draft.Phone),
	}
	if contact.FullName == "" {
		fail("full_name", "full name is required")
	}
	if contact.Email == "" {
		fail("email", "email is required")
	} else if !emailPattern.MatchString(contact.Email) {
		fail("email", "email address is not valid")
	}
	if contact.Phone == "" {
		fail("phone", "phone number is required")
	}

	accessOption := AccessOption(strings.TrimSpace(draft.AccessOption))
	if !accessOption.IsValid() {
		fail("access_option", "access option must be training or appointment")
	}

	dates := validateDates(draft.SelectedDates, policy, now, fail)
	validateTimeSlots(draft.SelectedTimeSlots, dates, catalog, policy, fail)
	validateEquipment(draft.SelectedEquipment, accessOption, catalog, policy, fail)

	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields...)
	}

	return newBookingRequest(contact, accessOption, dates, draft.SelectedTimeSlots, draft.SelectedEquipment, now), nil
}

func validateDates(raw []string, policy Policy, now time.Time, fail func(field, message string)) []time.Time {
	if len(raw) < policy.MinDates {
		fail("selected_dates", fmt.Sprintf("select at least %d date(s)", policy.MinDates))
		return nil
	}
	if len(raw) > policy.MaxDates {
		fail("selected_dates", fmt.Sprintf("select at most %d dates", policy.MaxDates))
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, s := range raw {
		d, err := time.ParseInLocation(DateLayout, s, time.UTC)
		if err != nil {
			fail("selected_dates", fmt.Sprintf("%q is not a valid date (expected YYYY-MM-DD)", s))
			continue
		}
		if seen[s] {
			fail("selected_dates", fmt.Sprintf("date %s selected more than once", s))
			continue
		}
		seen[s] = true
		if d.Before(today) {
			fail("selected_dates", fmt.Sprintf("date %s is in the past", s))
			continue
		}
		if !policy.IsOpenOn(d.Weekday()) {
			fail("selected_dates", fmt.Sprintf("the lab is closed on %ss", d.Weekday()))
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func validateTimeSlots(slots []string, dates []time.Time, catalog Catalog, policy Policy, fail func(field, message string)) {
	if len(slots) < policy.MinTimeSlots {
		fail("selected_time_slots", fmt.Sprintf("select at least %d time slot(s)", policy.MinTimeSlots))
		return
	}
	if len(slots) > policy.MaxTimeSlots {
		fail("selected_time_slots", fmt.Sprintf("select at most %d time slots", policy.MaxTimeSlots))
		return
	}

	weekdays := DeriveOpenWeekdays(dates)
	seen := make(map[string]bool, len(slots))
	for _, label := range slots {
		if seen[label] {
			fail("selected_time_slots", fmt.Sprintf("time slot %q selected more than once", label))
			continue
		}
		seen[label] = true
		slot, ok := catalog.FindSlot(label)
		if !ok {
			fail("selected_time_slots", fmt.Sprintf("unknown time slot %q", label))
			continue
		}
		if len(dates) > 0 && !weekdays[slot.Weekday] {
			fail("selected_time_slots", fmt.Sprintf("time slot %q does not fall on any selected date", label))
		}
	}
}

func validateEquipment(equipment []string, accessOption AccessOption, catalog Catalog, policy Policy, fail func(field, message string)) {
	minRequired := policy.MinEquipment
	if policy.EquipmentOptionalForTraining && accessOption == AccessTraining {
		minRequired = 0
	}
	if len(equipment) < minRequired {
		fail("selected_equipment", fmt.Sprintf("select at least %d equipment item(s)", minRequired))
		return
	}

	seen := make(map[string]bool, len(equipment))
	for _, name := range equipment {
		if seen[name] {
			fail("selected_equipment", fmt.Sprintf("equipment %q selected more than once", name))
			continue
		}
		seen[name] = true
		if !catalog.HasEquipment(name) {
			fail("selected_equipment", fmt.Sprintf("unknown equipment %q", name))
		}
	}
}
