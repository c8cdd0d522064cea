package leave

import (
	"context"
)

type RequestService interface {
	// Vacation
	ValidateVacation(ctx context.Context, req ValidateVacationRequest) (ValidationResult, error)
	CreateVacation(ctx context.Context, req CreateVacationRequest) (RequestResponse, error)
	UpdateVacation(ctx context.Context, req UpdateVacationRequest) (RequestResponse, error)
	// Other categories
	CreateLicense(ctx context.Context, req CreateLicenseRequest) (RequestResponse, error)
	CreateOvertime(ctx context.Context, req CreateOvertimeRequest) (RequestResponse, error)
	CreateResignation(ctx context.Context, req CreateResignationRequest) (RequestResponse, error)
	// Decisions
	Approve(ctx context.Context, req ApproveRequestRequest) (RequestResponse, error)
	Reject(ctx context.Context, req RejectRequestRequest) (RequestResponse, error)
	// Lifecycle
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (RequestResponse, error)
	ListByContract(ctx context.Context, contractID string, includeInactive bool) ([]RequestResponse, error)
}
