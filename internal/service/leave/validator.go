package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
)

// Validator applies the vacation overlap rules and the resignation side
// effect of an approved vacation.
type Validator struct {
	requests  leave.RequestRepository
	contracts contract.ContractRepository
}

func NewValidator(requests leave.RequestRepository, contracts contract.ContractRepository) *Validator {
	return &Validator{requests: requests, contracts: contracts}
}

type vacationRule struct {
	kind   leave.ConflictKind
	filter func(contractID string, period leave.DateRange, excludeID string) leave.RequestFilter
}

// Evaluated in order; the first match wins.
var vacationRules = []vacationRule{
	{
		kind: leave.ConflictPendingVacation,
		filter: func(contractID string, _ leave.DateRange, excludeID string) leave.RequestFilter {
			return leave.RequestFilter{
				ContractID: contractID,
				Category:   leave.CategoryVacation,
				Status:     leave.StatusPending,
				ExcludeID:  excludeID,
			}
		},
	},
	{
		kind: leave.ConflictApprovedVacation,
		filter: func(contractID string, period leave.DateRange, excludeID string) leave.RequestFilter {
			return leave.RequestFilter{
				ContractID:  contractID,
				Category:    leave.CategoryVacation,
				Status:      leave.StatusApproved,
				ExcludeID:   excludeID,
				Overlapping: &period,
			}
		},
	},
	{
		kind: leave.ConflictJustifiedLicense,
		filter: func(contractID string, period leave.DateRange, _ string) leave.RequestFilter {
			return leave.RequestFilter{
				ContractID:  contractID,
				Category:    leave.CategoryLicense,
				Status:      leave.StatusJustified,
				Overlapping: &period,
			}
		},
	},
	{
		kind: leave.ConflictApprovedOvertime,
		filter: func(contractID string, period leave.DateRange, _ string) leave.RequestFilter {
			return leave.RequestFilter{
				ContractID:  contractID,
				Category:    leave.CategoryOvertime,
				Status:      leave.StatusApproved,
				Overlapping: &period,
			}
		},
	},
}

// ValidateVacation reports whether a vacation over period may be filed for
// the contract. excludeID skips the request being edited. Storage failures
// are returned as errors; conflicts are part of the result.
func (v *Validator) ValidateVacation(ctx context.Context, contractID string, period leave.DateRange, excludeID string) (leave.ValidationResult, error) {
	return v.check(ctx, vacationRules, contractID, period, excludeID)
}

// ValidateApprovedVacation applies every rule except the pending one. It
// guards an approved vacation returning to the active set, which may sit
// next to a pending request.
func (v *Validator) ValidateApprovedVacation(ctx context.Context, contractID string, period leave.DateRange, excludeID string) (leave.ValidationResult, error) {
	return v.check(ctx, vacationRules[1:], contractID, period, excludeID)
}

func (v *Validator) check(ctx context.Context, rules []vacationRule, contractID string, period leave.DateRange, excludeID string) (leave.ValidationResult, error) {
	for _, rule := range rules {
		found, err := v.requests.Exists(ctx, rule.filter(contractID, period, excludeID))
		if err != nil {
			return leave.ValidationResult{}, fmt.Errorf("check %s: %w", rule.kind, err)
		}
		if found {
			return leave.Conflict(rule.kind), nil
		}
	}
	return leave.Valid(), nil
}

// OnApproval pushes the effective date of the contract's accepted
// resignation forward by approvedDays. It must run inside the approval
// transaction carried by ctx: the contract row lock serializes concurrent
// approvals for the same contract.
func (v *Validator) OnApproval(ctx context.Context, contractID string, approvedDays int) error {
	if err := v.contracts.LockForUpdate(ctx, contractID); err != nil {
		return fmt.Errorf("lock contract: %w", err)
	}

	resignation, err := v.requests.FindAcceptedResignationForUpdate(ctx, contractID)
	if errors.Is(err, leave.ErrRequestNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find accepted resignation: %w", err)
	}

	current := resignation.Resignation.EffectiveDate
	pushed := calendar.AddDays(current, approvedDays)
	if err := v.requests.UpdateResignationEffectiveDate(ctx, resignation.ID, pushed); err != nil {
		return fmt.Errorf("update resignation effective date: %w", err)
	}

	slog.Info("Resignation effective date pushed",
		"contract_id", contractID,
		"request_id", resignation.ID,
		"from", calendar.FormatDate(current),
		"to", calendar.FormatDate(pushed),
		"days", approvedDays,
	)
	return nil
}
