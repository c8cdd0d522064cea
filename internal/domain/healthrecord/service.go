package healthrecord

import (
	"bytes"
	"context"
)

type HealthRecordService interface {
	Create(ctx context.Context, req CreateHealthRecordRequest) (HealthRecordResponse, error)
	Get(ctx context.Context, id string) (HealthRecordResponse, error)
	List(ctx context.Context, filter HealthRecordFilter) ([]HealthRecordResponse, error)
	Update(ctx context.Context, req UpdateHealthRecordRequest) (HealthRecordResponse, error)
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
	BulkDeactivate(ctx context.Context, req BulkDeactivateRequest) (BulkDeactivateResponse, error)

	// ExpireStale is the daily health-record sweep.
	ExpireStale(ctx context.Context) (int64, error)

	// ExportExpiring renders current records expiring within withinDays as XLSX.
	ExportExpiring(ctx context.Context, withinDays int) (*bytes.Buffer, error)
}
