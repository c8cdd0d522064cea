package contract

import "context"

type ContractService interface {
	Create(ctx context.Context, req CreateContractRequest) (ContractResponse, error)
	Get(ctx context.Context, id string) (ContractResponse, error)
	List(ctx context.Context, filter ContractFilter) ([]ContractResponse, error)
	UpdateDates(ctx context.Context, req UpdateContractRequest) (ContractResponse, error)
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
	BulkDeactivate(ctx context.Context, req BulkDeactivateRequest) (BulkDeactivateResponse, error)

	// RecomputeStatuses is the daily contract sweep.
	RecomputeStatuses(ctx context.Context) (SweepResult, error)
}
