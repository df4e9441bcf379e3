package enums

import "fmt"

// ContactRequestStatus tracks the moderation state of a contact-info request.
type ContactRequestStatus string

const (
	ContactRequestPending  ContactRequestStatus = "pending"
	ContactRequestApproved ContactRequestStatus = "approved"
)

var validContactRequestStatuses = []ContactRequestStatus{
	ContactRequestPending,
	ContactRequestApproved,
}

// IsValid reports whether the value matches the canonical contact request status enum.
func (c ContactRequestStatus) IsValid() bool {
	for _, candidate := range validContactRequestStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContactRequestStatus converts the raw string to ContactRequestStatus.
func ParseContactRequestStatus(value string) (ContactRequestStatus, error) {
	for _, candidate := range validContactRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact request status %q", value)
}
