package leave

import (
	"context"
	"time"
)

// RequestFilter selects requests. Inactive (soft-deleted) rows are excluded
// unless IncludeInactive is set.
type RequestFilter struct {
	ContractID string
	Category   Category
	Status     RequestStatus
	ExcludeID  string

	// Overlapping keeps requests whose payload dates intersect the range.
	// Single-day payloads (overtime) match when the day lies inside it.
	Overlapping *DateRange

	IncludeInactive bool
}

// RequestRepository - interface for requests and their category tables
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
	Exists(ctx context.Context, filter RequestFilter) (bool, error)

	UpdateVacationPeriod(ctx context.Context, id string, period DateRange, days int) error
	UpdateDecision(ctx context.Context, request Request) error
	SetActive(ctx context.Context, id string, active bool) error

	// FindAcceptedResignationForUpdate returns the active accepted resignation
	// of a contract, row-locked, or ErrRequestNotFound.
	FindAcceptedResignationForUpdate(ctx context.Context, contractID string) (Request, error)
	UpdateResignationEffectiveDate(ctx context.Context, id string, effective time.Time) error
}
