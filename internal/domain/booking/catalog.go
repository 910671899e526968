package booking

import (
	"fmt"
	"strings"
	"time"
)

// AccessOption is the kind of visit being requested.
type AccessOption string

const (
	AccessTraining    AccessOption = "training"
	AccessAppointment AccessOption = "appointment"
)

// IsValid returns true if the access option is recognized.
func (a AccessOption) IsValid() bool {
	switch a {
	case AccessTraining, AccessAppointment:
		return true
	}
	return false
}

// TimeSlot is a fixed (weekday, time-range) entry from the lab's catalog,
// e.g. "Tuesday 11 AM - 1 PM". Visitors pick labels, never free times.
type TimeSlot struct {
	Label   string       `json:"label"`
	Weekday time.Weekday `json:"weekday"`
}

// Catalog holds the fixed time slot and equipment offerings.
type Catalog struct {
	Slots     []TimeSlot
	Equipment []string
}

// NewCatalog builds a catalog from slot labels and equipment names. Each
// slot label must begin with a weekday name.
func NewCatalog(slotLabels, equipment []string) (Catalog, error) {
	slots := make([]TimeSlot, len(slotLabels))
	for i, label := range slotLabels {
		wd, err := slotWeekday(label)
		if err != nil {
			return Catalog{}, err
		}
		slots[i] = TimeSlot{Label: label, Weekday: wd}
	}
	return Catalog{Slots: slots, Equipment: equipment}, nil
}

// FindSlot returns the catalog slot with the given label.
func (c Catalog) FindSlot(label string) (TimeSlot, bool) {
	for _, s := range c.Slots {
		if s.Label == label {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// HasEquipment returns true if the given equipment name is offered.
func (c Catalog) HasEquipment(name string) bool {
	for _, e := range c.Equipment {
		if e == name {
			return true
		}
	}
	return false
}

// Policy holds the intake rules: which weekdays accept bookings, the
// allowed selection counts, and whether training visits may skip
// equipment. Values come from configuration at process start.
type Policy struct {
	OpenWeekdays                 map[time.Weekday]bool
	MinDates                     int
	MaxDates                     int
	MinTimeSlots                 int
	MaxTimeSlots                 int
	MinEquipment                 int
	EquipmentOptionalForTraining bool
}

// NewPolicy builds a Policy from weekday names and cardinality bounds.
func NewPolicy(openWeekdays []string, minDates, maxDates, minSlots, maxSlots, minEquipment int, equipmentOptionalForTraining bool) (Policy, error) {
	open := make(map[time.Weekday]bool, len(openWeekdays))
	for _, name := range openWeekdays {
		wd, ok := parseWeekday(name)
		if !ok {
			return Policy{}, fmt.Errorf("invalid weekday name: %s", name)
		}
		open[wd] = true
	}
	return Policy{
		OpenWeekdays:                 open,
		MinDates:                     minDates,
		MaxDates:                     maxDates,
		MinTimeSlots:                 minSlots,
		MaxTimeSlots:                 maxSlots,
		MinEquipment:                 minEquipment,
		EquipmentOptionalForTraining: equipmentOptionalForTraining,
	}, nil
}

// IsOpenOn returns true if the lab accepts bookings on the given weekday.
func (p Policy) IsOpenOn(wd time.Weekday) bool {
	return p.OpenWeekdays[wd]
}

func slotWeekday(label string) (time.Weekday, error) {
	first, _, _ := strings.Cut(strings.TrimSpace(label), " ")
	wd, ok := parseWeekday(first)
	if !ok {
		return 0, fmt.Errorf("time slot %q does not start with a weekday name", label)
	}
	return wd, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(wd.String(), name) {
			return wd, true
		}
	}
	return 0, false
}
