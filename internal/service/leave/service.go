package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/database"
)

type RequestServiceImpl struct {
	tx        database.Transactor
	requests  leave.RequestRepository
	contracts contract.ContractRepository
	validator *Validator
	calendar  *calendar.Calendar
	now       func() time.Time
}

func NewRequestService(
	tx database.Transactor,
	requests leave.RequestRepository,
	contracts contract.ContractRepository,
	cal *calendar.Calendar,
) leave.RequestService {
	return &RequestServiceImpl{
		tx:        tx,
		requests:  requests,
		contracts: contracts,
		validator: NewValidator(requests, contracts),
		calendar:  cal,
		now:       time.Now,
	}
}

func (s *RequestServiceImpl) respond(r leave.Request) leave.RequestResponse {
	resp := leave.NewRequestResponse(r)
	if resp.Vacation != nil {
		n := s.calendar.BusinessDaysBetween(r.Vacation.Period.Start, r.Vacation.Period.End)
		resp.Vacation.BusinessDays = &n
	}
	if resp.License != nil {
		n := s.calendar.BusinessDaysBetween(r.License.Period.Start, r.License.Period.End)
		resp.License.BusinessDays = &n
	}
	return resp
}

// scopedContract loads a contract visible from ctx. Contracts of another
// workspace read as not found.
func (s *RequestServiceImpl) scopedContract(ctx context.Context, id string) (contract.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return contract.Contract{}, err
	}
	if !auth.InWorkspace(ctx, c.WorkspaceID) {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

// activeContract rejects unknown, foreign and soft-deleted contracts.
func (s *RequestServiceImpl) activeContract(ctx context.Context, id string) error {
	c, err := s.scopedContract(ctx, id)
	if err != nil {
		return err
	}
	if !c.Active {
		return contract.ErrContractInactive
	}
	return nil
}

// loadRequest returns a request together with its contract. Requests whose
// contract sits in another workspace read as not found.
func (s *RequestServiceImpl) loadRequest(ctx context.Context, id string, forUpdate bool) (leave.Request, contract.Contract, error) {
	get := s.requests.GetByID
	if forUpdate {
		get = s.requests.GetByIDForUpdate
	}
	request, err := get(ctx, id)
	if err != nil {
		return leave.Request{}, contract.Contract{}, err
	}

	c, err := s.contracts.GetByID(ctx, request.ContractID)
	if err != nil {
		return leave.Request{}, contract.Contract{}, err
	}
	if !auth.InWorkspace(ctx, c.WorkspaceID) {
		return leave.Request{}, contract.Contract{}, leave.ErrRequestNotFound
	}
	return request, c, nil
}

// vacationPeriod parses a vacation range and checks it starts on a business day.
func (s *RequestServiceImpl) vacationPeriod(req interface{ Period() (leave.DateRange, error) }) (leave.DateRange, error) {
	period, err := req.Period()
	if err != nil {
		return leave.DateRange{}, err
	}
	if !s.calendar.IsBusinessDay(period.Start) {
		return leave.DateRange{}, leave.ErrNotBusinessDay
	}
	return period, nil
}

// ValidateVacation runs the same checks as CreateVacation without persisting
// anything.
func (s *RequestServiceImpl) ValidateVacation(ctx context.Context, req leave.ValidateVacationRequest) (leave.ValidationResult, error) {
	if err := req.Validate(); err != nil {
		return leave.ValidationResult{}, err
	}
	period, err := s.vacationPeriod(&req)
	if err != nil {
		return leave.ValidationResult{}, err
	}
	if err := s.activeContract(ctx, req.ContractID); err != nil {
		return leave.ValidationResult{}, err
	}
	return s.validator.ValidateVacation(ctx, req.ContractID, period, req.ExcludeRequestID)
}

func (s *RequestServiceImpl) CreateVacation(ctx context.Context, req leave.CreateVacationRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	period, err := s.vacationPeriod(&req)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if err := s.activeContract(ctx, req.ContractID); err != nil {
		return leave.RequestResponse{}, err
	}

	var created leave.Request
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		// Serializes concurrent filings for the contract so the pending check holds.
		if err := s.contracts.LockForUpdate(txCtx, req.ContractID); err != nil {
			return err
		}

		result, err := s.validator.ValidateVacation(txCtx, req.ContractID, period, "")
		if err != nil {
			return err
		}
		if err := result.Err(); err != nil {
			return err
		}

		created, err = s.requests.Create(txCtx, leave.Request{
			ContractID: req.ContractID,
			Category:   leave.CategoryVacation,
			Vacation: &leave.Vacation{
				Period: period,
				Days:   period.Days(),
				Status: leave.StatusPending,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create vacation request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("Vacation request created", "request_id", created.ID, "contract_id", created.ContractID, "days", created.Vacation.Days)
	return s.respond(created), nil
}

func (s *RequestServiceImpl) UpdateVacation(ctx context.Context, req leave.UpdateVacationRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	period, err := s.vacationPeriod(&req)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	var updated leave.Request
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		current, c, err := s.loadRequest(txCtx, req.ID, true)
		if err != nil {
			return err
		}
		if !current.Active {
			return leave.ErrRequestInactive
		}
		if !c.Active {
			return contract.ErrContractInactive
		}
		if current.Category != leave.CategoryVacation || current.Status() != leave.StatusPending {
			return leave.ErrRequestNotEditable
		}

		if err := s.contracts.LockForUpdate(txCtx, current.ContractID); err != nil {
			return err
		}
		result, err := s.validator.ValidateVacation(txCtx, current.ContractID, period, current.ID)
		if err != nil {
			return err
		}
		if err := result.Err(); err != nil {
			return err
		}

		if err := s.requests.UpdateVacationPeriod(txCtx, current.ID, period, period.Days()); err != nil {
			return fmt.Errorf("failed to update vacation request: %w", err)
		}

		updated, err = s.requests.GetByID(txCtx, current.ID)
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return s.respond(updated), nil
}

func (s *RequestServiceImpl) CreateLicense(ctx context.Context, req leave.CreateLicenseRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	period, err := req.Period()
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if err := s.activeContract(ctx, req.ContractID); err != nil {
		return leave.RequestResponse{}, err
	}

	created, err := s.requests.Create(ctx, leave.Request{
		ContractID: req.ContractID,
		Category:   leave.CategoryLicense,
		License: &leave.License{
			Period: period,
			Reason: req.Reason,
			Status: leave.StatusPending,
		},
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create license request: %w", err)
	}

	return s.respond(created), nil
}

func (s *RequestServiceImpl) CreateOvertime(ctx context.Context, req leave.CreateOvertimeRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if err := s.activeContract(ctx, req.ContractID); err != nil {
		return leave.RequestResponse{}, err
	}

	created, err := s.requests.Create(ctx, leave.Request{
		ContractID: req.ContractID,
		Category:   leave.CategoryOvertime,
		Overtime: &leave.Overtime{
			Date:   date,
			Hours:  req.Hours,
			Status: leave.StatusPending,
		},
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return s.respond(created), nil
}

func (s *RequestServiceImpl) CreateResignation(ctx context.Context, req leave.CreateResignationRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	notice, err := calendar.ParseDate(req.NoticeDate)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	effective, err := calendar.ParseDate(req.EffectiveDate)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if err := s.activeContract(ctx, req.ContractID); err != nil {
		return leave.RequestResponse{}, err
	}

	var created leave.Request
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.contracts.LockForUpdate(txCtx, req.ContractID); err != nil {
			return err
		}
		if err := s.ensureNoOpenResignation(txCtx, req.ContractID, ""); err != nil {
			return err
		}

		created, err = s.requests.Create(txCtx, leave.Request{
			ContractID: req.ContractID,
			Category:   leave.CategoryResignation,
			Resignation: &leave.Resignation{
				NoticeDate:    notice,
				EffectiveDate: effective,
				Status:        leave.StatusPending,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create resignation request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return s.respond(created), nil
}

// Approve decides a pending request in one transaction. An approved
// vacation also pushes the contract's accepted resignation.
func (s *RequestServiceImpl) Approve(ctx context.Context, req leave.ApproveRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	var approved leave.Request
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		request, c, err := s.loadRequest(txCtx, req.ID, true)
		if err != nil {
			return err
		}
		if !request.Active {
			return leave.ErrRequestInactive
		}
		if !c.Active {
			return contract.ErrContractInactive
		}
		if err := request.Decide(true, req.ApprovedBy, s.now()); err != nil {
			return err
		}
		if err := s.requests.UpdateDecision(txCtx, request); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}

		if request.Category == leave.CategoryVacation {
			if err := s.validator.OnApproval(txCtx, request.ContractID, request.Vacation.Days); err != nil {
				return err
			}
		}

		approved = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("Request approved", "request_id", approved.ID, "category", approved.Category, "approved_by", req.ApprovedBy)
	return s.respond(approved), nil
}

func (s *RequestServiceImpl) Reject(ctx context.Context, req leave.RejectRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	var rejected leave.Request
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		request, _, err := s.loadRequest(txCtx, req.ID, true)
		if err != nil {
			return err
		}
		if !request.Active {
			return leave.ErrRequestInactive
		}
		if err := request.Decide(false, req.RejectedBy, s.now()); err != nil {
			return err
		}
		reason := req.Reason
		request.RejectionReason = &reason

		if err := s.requests.UpdateDecision(txCtx, request); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		rejected = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("Request rejected", "request_id", rejected.ID, "category", rejected.Category, "rejected_by", req.RejectedBy)
	return s.respond(rejected), nil
}

func (s *RequestServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, _, err := s.loadRequest(ctx, id, false); err != nil {
		return err
	}
	return s.requests.SetActive(ctx, id, false)
}

// Reactivate returns a soft-deleted request to the active set. The request
// must pass the same rules it would face if filed now, so a reactivated
// request never produces a state the validator forbids.
func (s *RequestServiceImpl) Reactivate(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		request, c, err := s.loadRequest(txCtx, id, true)
		if err != nil {
			return err
		}
		if request.Active {
			return nil
		}
		if !c.Active {
			return contract.ErrContractInactive
		}

		if err := s.contracts.LockForUpdate(txCtx, c.ID); err != nil {
			return err
		}
		if err := s.checkReactivation(txCtx, request); err != nil {
			return err
		}

		if err := s.requests.SetActive(txCtx, id, true); err != nil {
			return err
		}
		slog.Info("Request reactivated", "request_id", id, "category", request.Category, "status", request.Status())
		return nil
	})
}

func (s *RequestServiceImpl) checkReactivation(ctx context.Context, r leave.Request) error {
	switch {
	case r.Vacation != nil:
		var result leave.ValidationResult
		var err error
		switch r.Vacation.Status {
		case leave.StatusPending:
			result, err = s.validator.ValidateVacation(ctx, r.ContractID, r.Vacation.Period, r.ID)
		case leave.StatusApproved:
			result, err = s.validator.ValidateApprovedVacation(ctx, r.ContractID, r.Vacation.Period, r.ID)
		default:
			return nil
		}
		if err != nil {
			return err
		}
		return result.Err()

	case r.Resignation != nil:
		if r.Resignation.Status == leave.StatusRejected {
			return nil
		}
		return s.ensureNoOpenResignation(ctx, r.ContractID, r.ID)
	}
	return nil
}

// ensureNoOpenResignation fails when the contract already has an active
// pending or accepted resignation other than excludeID.
func (s *RequestServiceImpl) ensureNoOpenResignation(ctx context.Context, contractID, excludeID string) error {
	for _, status := range []leave.RequestStatus{leave.StatusPending, leave.StatusAccepted} {
		open, err := s.requests.Exists(ctx, leave.RequestFilter{
			ContractID: contractID,
			Category:   leave.CategoryResignation,
			Status:     status,
			ExcludeID:  excludeID,
		})
		if err != nil {
			return err
		}
		if open {
			return leave.ErrResignationExists
		}
	}
	return nil
}

func (s *RequestServiceImpl) Get(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, _, err := s.loadRequest(ctx, id, false)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return s.respond(request), nil
}

func (s *RequestServiceImpl) ListByContract(ctx context.Context, contractID string, includeInactive bool) ([]leave.RequestResponse, error) {
	if _, err := s.scopedContract(ctx, contractID); err != nil {
		return nil, err
	}

	requests, err := s.requests.List(ctx, leave.RequestFilter{
		ContractID:      contractID,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, s.respond(r))
	}
	return responses, nil
}
