package contract

import (
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
)

type ContractStatus string

const (
	ContractStatusPending  ContractStatus = "pending"
	ContractStatusActive   ContractStatus = "active"
	ContractStatusFinished ContractStatus = "finished"
)

// Contract entity
type Contract struct {
	ID          string
	WorkspaceID string
	EmployeeID  string
	PositionID  *string

	StartDate time.Time
	EndDate   *time.Time // nil means open-ended

	// Status is a projection of the dates onto the current day, refreshed by
	// the daily sweep. It is never set from outside.
	Status ContractStatus
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusAt derives the status of a contract running [start, end] on today.
// Exactly one status holds for any input:
//
//	start > today                          -> pending
//	start <= today, end nil or end >= today -> active
//	start <= today, end < today             -> finished
func StatusAt(start time.Time, end *time.Time, today time.Time) ContractStatus {
	start, today = calendar.DateOf(start), calendar.DateOf(today)

	if start.After(today) {
		return ContractStatusPending
	}
	if end != nil && calendar.DateOf(*end).Before(today) {
		return ContractStatusFinished
	}
	return ContractStatusActive
}
