package contract

import (
	"context"
	"time"
)

// SweepResult counts rows moved into each status by one sweep.
type SweepResult struct {
	Pending  int64
	Active   int64
	Finished int64
}

func (r SweepResult) Total() int64 {
	return r.Pending + r.Active + r.Finished
}

type ContractFilter struct {
	WorkspaceID     string
	EmployeeID      string
	IncludeInactive bool
}

// ContractRepository - interface for contracts table
type ContractRepository interface {
	Create(ctx context.Context, contract Contract) (Contract, error)
	GetByID(ctx context.Context, id string) (Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]Contract, error)
	UpdateDates(ctx context.Context, id string, start time.Time, end *time.Time, status ContractStatus) error
	SetActive(ctx context.Context, id string, active bool) error

	// DeactivateMany soft-deletes the active contracts among ids. A non-empty
	// workspaceID limits it to that workspace. Returns the rows changed.
	DeactivateMany(ctx context.Context, ids []string, workspaceID string) (int64, error)

	// LockForUpdate takes a row lock on the contract for the rest of the
	// transaction carried by ctx.
	LockForUpdate(ctx context.Context, id string) error

	// SweepStatuses moves every contract to the status implied by today,
	// using bulk conditional updates. Rows already in the right status are
	// left untouched.
	SweepStatuses(ctx context.Context, today time.Time) (SweepResult, error)
}
