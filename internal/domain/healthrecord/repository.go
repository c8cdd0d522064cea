package healthrecord

import (
	"context"
	"time"
)

type HealthRecordFilter struct {
	WorkspaceID     string
	EmployeeID      string
	IncludeInactive bool
}

// HealthRecordRepository - interface for health_records table
type HealthRecordRepository interface {
	Create(ctx context.Context, record HealthRecord) (HealthRecord, error)
	GetByID(ctx context.Context, id string) (HealthRecord, error)
	List(ctx context.Context, filter HealthRecordFilter) ([]HealthRecord, error)
	Update(ctx context.Context, record HealthRecord) error
	SetActive(ctx context.Context, id string, active bool) error

	// DeactivateMany soft-deletes the active records among ids. A non-empty
	// workspaceID limits it to that workspace. Returns the rows changed.
	DeactivateMany(ctx context.Context, ids []string, workspaceID string) (int64, error)

	// ListExpiring returns active, current records whose expiration falls in
	// [from, to]. An empty workspaceID spans every workspace.
	ListExpiring(ctx context.Context, workspaceID string, from, to time.Time) ([]HealthRecord, error)

	// ExpireStale clears Current on every record with expiration before today
	// in a single statement and returns the number of rows changed.
	ExpireStale(ctx context.Context, today time.Time) (int64, error)
}
