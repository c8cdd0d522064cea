package contract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
)

type ContractServiceImpl struct {
	contracts contract.ContractRepository
	loc       *time.Location
	now       func() time.Time
}

func NewContractService(contracts contract.ContractRepository, loc *time.Location) contract.ContractService {
	return &ContractServiceImpl{
		contracts: contracts,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *ContractServiceImpl) today() time.Time {
	loc := s.loc
	if loc == nil {
		loc = time.Local
	}
	return calendar.DateOf(s.now().In(loc))
}

func parseDates(startStr string, endStr *string) (time.Time, *time.Time, error) {
	start, err := calendar.ParseDate(startStr)
	if err != nil {
		return time.Time{}, nil, err
	}
	if endStr == nil {
		return start, nil, nil
	}
	end, err := calendar.ParseDate(*endStr)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}

// load returns the contract when ctx may see it. Contracts of another
// workspace read as not found.
func (s *ContractServiceImpl) load(ctx context.Context, id string) (contract.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return contract.Contract{}, err
	}
	if !auth.InWorkspace(ctx, c.WorkspaceID) {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (s *ContractServiceImpl) Create(ctx context.Context, req contract.CreateContractRequest) (contract.ContractResponse, error) {
	if workspaceID, ok := auth.WorkspaceFromContext(ctx); ok {
		req.WorkspaceID = workspaceID
	}
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}
	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return contract.ContractResponse{}, err
	}

	created, err := s.contracts.Create(ctx, contract.Contract{
		WorkspaceID: req.WorkspaceID,
		EmployeeID:  req.EmployeeID,
		PositionID:  req.PositionID,
		StartDate:   start,
		EndDate:     end,
		Status:      contract.StatusAt(start, end, s.today()),
	})
	if err != nil {
		return contract.ContractResponse{}, fmt.Errorf("failed to create contract: %w", err)
	}

	return contract.NewContractResponse(created), nil
}

func (s *ContractServiceImpl) Get(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return contract.NewContractResponse(c), nil
}

func (s *ContractServiceImpl) List(ctx context.Context, filter contract.ContractFilter) ([]contract.ContractResponse, error) {
	if workspaceID, ok := auth.WorkspaceFromContext(ctx); ok {
		filter.WorkspaceID = workspaceID
	}
	contracts, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	responses := make([]contract.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, contract.NewContractResponse(c))
	}
	return responses, nil
}

func (s *ContractServiceImpl) UpdateDates(ctx context.Context, req contract.UpdateContractRequest) (contract.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}
	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return contract.ContractResponse{}, err
	}

	current, err := s.load(ctx, req.ID)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	if !current.Active {
		return contract.ContractResponse{}, contract.ErrContractInactive
	}

	status := contract.StatusAt(start, end, s.today())
	if err := s.contracts.UpdateDates(ctx, req.ID, start, end, status); err != nil {
		return contract.ContractResponse{}, fmt.Errorf("failed to update contract: %w", err)
	}

	current.StartDate, current.EndDate, current.Status = start, end, status
	return contract.NewContractResponse(current), nil
}

func (s *ContractServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.contracts.SetActive(ctx, id, false)
}

func (s *ContractServiceImpl) Reactivate(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.contracts.SetActive(ctx, id, true)
}

// BulkDeactivate soft-deletes every listed contract visible from ctx. Unknown,
// foreign and already inactive ids are skipped.
func (s *ContractServiceImpl) BulkDeactivate(ctx context.Context, req contract.BulkDeactivateRequest) (contract.BulkDeactivateResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.BulkDeactivateResponse{}, err
	}

	workspaceID, _ := auth.WorkspaceFromContext(ctx)
	n, err := s.contracts.DeactivateMany(ctx, req.IDs, workspaceID)
	if err != nil {
		return contract.BulkDeactivateResponse{}, fmt.Errorf("failed to deactivate contracts: %w", err)
	}

	slog.Info("Contracts deactivated", "requested", len(req.IDs), "deactivated", n)
	return contract.BulkDeactivateResponse{Deactivated: n}, nil
}

func (s *ContractServiceImpl) RecomputeStatuses(ctx context.Context) (contract.SweepResult, error) {
	today := s.today()

	result, err := s.contracts.SweepStatuses(ctx, today)
	if err != nil {
		return result, fmt.Errorf("failed to sweep contract statuses: %w", err)
	}

	slog.Info("Contract statuses recomputed",
		"date", calendar.FormatDate(today),
		"pending", result.Pending,
		"active", result.Active,
		"finished", result.Finished,
	)
	return result, nil
}
