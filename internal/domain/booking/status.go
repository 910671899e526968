package booking

import "fmt"

// Status represents the current state of a booking request in its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusMissed    Status = "missed"
)

// recommendedTransitions describes the expected flow of a booking. It
// does not gate ChangeStatus, which accepts any valid status; the
// lifecycle service uses it to flag unusual moves in the logs.
var recommendedTransitions = map[Status][]Status{
	StatusPending:   {StatusScheduled, StatusCancelled},
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusMissed, StatusPending},
	StatusCancelled: {StatusScheduled, StatusPending},
	StatusMissed:    {StatusScheduled, StatusPending},
	StatusCompleted: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := recommendedTransitions[s]
	return exists
}

// IsRecommendedTransition returns true if moving from this status to the
// target follows the expected lifecycle flow.
func (s Status) IsRecommendedTransition(target Status) bool {
	allowed, exists := recommendedTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
