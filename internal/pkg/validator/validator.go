package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, e := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Field + ": " + e.Message)
	}
	return b.String()
}

// ToMap keeps the first message per field.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, e := range v {
		if _, seen := result[e.Field]; !seen {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no error was collected, so callers can `return errs.Err()`.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts any RFC 4122 UUID in canonical form.
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// MaxBulkIDs caps the ids accepted by one bulk operation.
const MaxBulkIDs = 100

// ValidateIDs checks a bulk id list: non-empty, at most MaxBulkIDs, every id a UUID.
func ValidateIDs(errs *ValidationErrors, field string, ids []string) {
	switch {
	case len(ids) == 0:
		errs.Add(field, field+" must not be empty")
		return
	case len(ids) > MaxBulkIDs:
		errs.Add(field, fmt.Sprintf("%s must not contain more than %d ids", field, MaxBulkIDs))
		return
	}
	for _, id := range ids {
		if !IsValidUUID(id) {
			errs.Add(field, field+" must contain only valid UUIDs")
			return
		}
	}
}

// IsValidDate parses a calendar date in the wire format.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := calendar.ParseDate(dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
