package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decidedAt = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

const workspaceID = "ws-1"

func newTestService(t *testing.T) (*RequestServiceImpl, *fakeRequestRepo, *fakeContractRepo) {
	t.Helper()

	requests := newFakeRequestRepo()
	contracts := newFakeContractRepo(contract.Contract{ID: contractID, WorkspaceID: workspaceID, Active: true})
	svc := NewRequestService(fakeTx{}, requests, contracts, calendar.New(calendar.DefaultHolidayTable())).(*RequestServiceImpl)
	svc.now = func() time.Time { return decidedAt }
	return svc, requests, contracts
}

func TestCreateVacation(t *testing.T) {
	svc, _, contracts := newTestService(t)

	resp, err := svc.CreateVacation(context.Background(), leave.CreateVacationRequest{
		ContractID: contractID,
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.Vacation)
	assert.Equal(t, 6, resp.Vacation.Days)
	require.NotNil(t, resp.Vacation.BusinessDays)
	assert.Equal(t, 5, *resp.Vacation.BusinessDays)
	assert.Equal(t, []string{contractID}, contracts.locked)
}

func TestCreateVacation_StartOnNonBusinessDay(t *testing.T) {
	svc, requests, _ := newTestService(t)

	for _, start := range []string{"2024-06-08", "2024-06-20"} { // Saturday, holiday
		_, err := svc.CreateVacation(context.Background(), leave.CreateVacationRequest{
			ContractID: contractID,
			StartDate:  start,
			EndDate:    "2024-06-28",
		})
		assert.ErrorIs(t, err, leave.ErrNotBusinessDay, start)
	}
	assert.Empty(t, requests.requests)
}

func TestCreateVacation_Conflict(t *testing.T) {
	svc, requests, _ := newTestService(t)
	requests.add(vacation("2024-06-01", "2024-06-10", leave.StatusApproved))

	_, err := svc.CreateVacation(context.Background(), leave.CreateVacationRequest{
		ContractID: contractID,
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-15",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, leave.ErrValidationConflict))

	var conflict *leave.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, leave.ConflictApprovedVacation, conflict.Kind)
	assert.Len(t, requests.requests, 1)
}

func TestCreateVacation_InvalidInput(t *testing.T) {
	svc, _, contracts := newTestService(t)

	_, err := svc.CreateVacation(context.Background(), leave.CreateVacationRequest{
		ContractID: contractID,
		StartDate:  "2024-06-15",
		EndDate:    "2024-06-10",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	require.NoError(t, contracts.SetActive(context.Background(), contractID, false))
	_, err = svc.CreateVacation(context.Background(), leave.CreateVacationRequest{
		ContractID: contractID,
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-15",
	})
	assert.ErrorIs(t, err, contract.ErrContractInactive)
}

func TestUpdateVacation_ExcludesItself(t *testing.T) {
	svc, requests, _ := newTestService(t)
	pending := requests.add(vacation("2024-06-10", "2024-06-15", leave.StatusPending))

	resp, err := svc.UpdateVacation(context.Background(), leave.UpdateVacationRequest{
		ID:        pending.ID,
		StartDate: "2024-06-11",
		EndDate:   "2024-06-19",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", resp.Vacation.StartDate)
	assert.Equal(t, 9, resp.Vacation.Days)
}

func TestUpdateVacation_OnlyPending(t *testing.T) {
	svc, requests, _ := newTestService(t)
	approved := requests.add(vacation("2024-06-10", "2024-06-15", leave.StatusApproved))
	lic := requests.add(license("2024-06-10", "2024-06-15", leave.StatusPending))

	for _, id := range []string{approved.ID, lic.ID} {
		_, err := svc.UpdateVacation(context.Background(), leave.UpdateVacationRequest{
			ID:        id,
			StartDate: "2024-06-11",
			EndDate:   "2024-06-19",
		})
		assert.ErrorIs(t, err, leave.ErrRequestNotEditable)
	}
}

func TestApprove_VacationPushesResignation(t *testing.T) {
	svc, requests, _ := newTestService(t)
	resignation := requests.add(leave.Request{
		ContractID: contractID,
		Category:   leave.CategoryResignation,
		Resignation: &leave.Resignation{
			NoticeDate:    day("2024-06-01"),
			EffectiveDate: day("2024-07-01"),
			Status:        leave.StatusAccepted,
		},
	})
	pending := requests.add(vacation("2024-06-10", "2024-06-14", leave.StatusPending))

	resp, err := svc.Approve(context.Background(), leave.ApproveRequestRequest{ID: pending.ID, ApprovedBy: "hr-1"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "hr-1", *resp.DecidedBy)
	assert.Equal(t, decidedAt, *resp.DecidedAt)

	got, err := requests.GetByID(context.Background(), resignation.ID)
	require.NoError(t, err)
	assert.Equal(t, day("2024-07-06"), got.Resignation.EffectiveDate)

	_, err = svc.Approve(context.Background(), leave.ApproveRequestRequest{ID: pending.ID, ApprovedBy: "hr-1"})
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)

	got, err = requests.GetByID(context.Background(), resignation.ID)
	require.NoError(t, err)
	assert.Equal(t, day("2024-07-06"), got.Resignation.EffectiveDate, "a repeated approval does not push twice")
}

func TestApprove_LicenseIsJustified(t *testing.T) {
	svc, requests, contracts := newTestService(t)
	lic := requests.add(license("2024-06-10", "2024-06-11", leave.StatusPending))

	resp, err := svc.Approve(context.Background(), leave.ApproveRequestRequest{ID: lic.ID, ApprovedBy: "hr-1"})
	require.NoError(t, err)
	assert.Equal(t, "justified", resp.Status)
	assert.Empty(t, contracts.locked, "only vacations touch the contract")
}

func TestApprove_Inactive(t *testing.T) {
	svc, requests, _ := newTestService(t)
	r := requests.add(vacation("2024-06-10", "2024-06-14", leave.StatusPending))
	require.NoError(t, svc.Deactivate(context.Background(), r.ID))

	_, err := svc.Approve(context.Background(), leave.ApproveRequestRequest{ID: r.ID, ApprovedBy: "hr-1"})
	assert.ErrorIs(t, err, leave.ErrRequestInactive)

	require.NoError(t, svc.Reactivate(context.Background(), r.ID))
	_, err = svc.Approve(context.Background(), leave.ApproveRequestRequest{ID: r.ID, ApprovedBy: "hr-1"})
	assert.NoError(t, err)
}

func TestReject(t *testing.T) {
	svc, requests, _ := newTestService(t)
	ot := requests.add(overtime("2024-06-12", leave.StatusPending))

	resp, err := svc.Reject(context.Background(), leave.RejectRequestRequest{ID: ot.ID, Reason: "not authorized", RejectedBy: "hr-1"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, "not authorized", *resp.RejectionReason)

	_, err = svc.Reject(context.Background(), leave.RejectRequestRequest{ID: ot.ID, Reason: "again", RejectedBy: "hr-1"})
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)
}

func TestCreateOvertimeAndLicense(t *testing.T) {
	svc, _, _ := newTestService(t)

	ot, err := svc.CreateOvertime(context.Background(), leave.CreateOvertimeRequest{
		ContractID: contractID,
		Date:       "2024-06-12",
		Hours:      decimal.RequireFromString("3.5"),
	})
	require.NoError(t, err)
	assert.True(t, ot.Overtime.Hours.Equal(decimal.RequireFromString("3.5")))

	lic, err := svc.CreateLicense(context.Background(), leave.CreateLicenseRequest{
		ContractID: contractID,
		StartDate:  "2024-06-14",
		EndDate:    "2024-06-17",
		Reason:     "medical",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, lic.License.Days)
	assert.Equal(t, 1, *lic.License.BusinessDays, "weekend and 06-17 holiday excluded")
}

func TestCreateResignation_OneOpenPerContract(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := leave.CreateResignationRequest{ContractID: contractID, NoticeDate: "2024-06-01", EffectiveDate: "2024-07-01"}
	resp, err := svc.CreateResignation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", resp.Resignation.EffectiveDate)

	_, err = svc.CreateResignation(context.Background(), req)
	assert.ErrorIs(t, err, leave.ErrResignationExists)
}

func TestListByContract(t *testing.T) {
	svc, requests, _ := newTestService(t)
	requests.add(vacation("2024-06-10", "2024-06-14", leave.StatusPending))
	hidden := requests.add(overtime("2024-06-12", leave.StatusPending))
	require.NoError(t, requests.SetActive(context.Background(), hidden.ID, false))

	list, err := svc.ListByContract(context.Background(), contractID, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.ListByContract(context.Background(), contractID, true)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListByContract(context.Background(), "missing", false)
	assert.ErrorIs(t, err, contract.ErrContractNotFound)
}

func TestValidateVacation_PaddedDates(t *testing.T) {
	svc, requests, _ := newTestService(t)
	requests.add(vacation("2024-06-01", "2024-06-10", leave.StatusApproved))

	result, err := svc.ValidateVacation(context.Background(), leave.ValidateVacationRequest{
		ContractID: contractID,
		StartDate:  "2024-06-10",
		EndDate:    " 2024-06-15",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, leave.ConflictApprovedVacation, result.Conflict)

	resp, err := svc.CreateVacation(context.Background(), leave.CreateVacationRequest{
		ContractID: contractID,
		StartDate:  "2024-06-11",
		EndDate:    "2024-06-15 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", resp.Vacation.EndDate)
	assert.Equal(t, 5, resp.Vacation.Days)
}

func TestValidateVacation_StartOnNonBusinessDay(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ValidateVacation(context.Background(), leave.ValidateVacationRequest{
		ContractID: contractID,
		StartDate:  "2024-06-08",
		EndDate:    "2024-06-14",
	})
	assert.ErrorIs(t, err, leave.ErrNotBusinessDay)
}

func TestReactivate_PendingVacationRunsValidator(t *testing.T) {
	svc, requests, contracts := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateVacation(ctx, leave.CreateVacationRequest{ContractID: contractID, StartDate: "2024-06-10", EndDate: "2024-06-14"})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, first.ID))

	_, err = svc.CreateVacation(ctx, leave.CreateVacationRequest{ContractID: contractID, StartDate: "2024-06-11", EndDate: "2024-06-19"})
	require.NoError(t, err)

	err = svc.Reactivate(ctx, first.ID)
	var conflict *leave.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, leave.ConflictPendingVacation, conflict.Kind)
	assert.Contains(t, contracts.locked, contractID)

	pending, err := requests.List(ctx, leave.RequestFilter{ContractID: contractID, Category: leave.CategoryVacation, Status: leave.StatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1, "only one active pending vacation")

	got, err := requests.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestReactivate_ApprovedVacation(t *testing.T) {
	svc, requests, _ := newTestService(t)
	ctx := context.Background()

	a := requests.add(vacation("2024-06-10", "2024-06-14", leave.StatusApproved))
	require.NoError(t, svc.Deactivate(ctx, a.ID))
	requests.add(vacation("2024-06-12", "2024-06-19", leave.StatusApproved))

	err := svc.Reactivate(ctx, a.ID)
	var conflict *leave.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, leave.ConflictApprovedVacation, conflict.Kind)

	b := requests.add(vacation("2024-07-01", "2024-07-05", leave.StatusApproved))
	require.NoError(t, svc.Deactivate(ctx, b.ID))
	requests.add(vacation("2024-08-05", "2024-08-09", leave.StatusPending))
	assert.NoError(t, svc.Reactivate(ctx, b.ID), "a pending request elsewhere does not block an approved one")
}

func TestReactivate_SecondOpenResignation(t *testing.T) {
	svc, requests, _ := newTestService(t)
	ctx := context.Background()

	accepted := requests.add(leave.Request{
		ContractID: contractID,
		Category:   leave.CategoryResignation,
		Resignation: &leave.Resignation{
			NoticeDate:    day("2024-06-01"),
			EffectiveDate: day("2024-07-01"),
			Status:        leave.StatusAccepted,
		},
	})
	require.NoError(t, svc.Deactivate(ctx, accepted.ID))

	_, err := svc.CreateResignation(ctx, leave.CreateResignationRequest{ContractID: contractID, NoticeDate: "2024-06-05", EffectiveDate: "2024-07-05"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Reactivate(ctx, accepted.ID), leave.ErrResignationExists)
	got, err := requests.GetByID(ctx, accepted.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestReactivate_ActiveIsNoop(t *testing.T) {
	svc, requests, contracts := newTestService(t)
	r := requests.add(vacation("2024-06-10", "2024-06-14", leave.StatusPending))

	require.NoError(t, svc.Reactivate(context.Background(), r.ID))
	assert.Empty(t, contracts.locked)
}

func TestApprove_InactiveContract(t *testing.T) {
	svc, requests, contracts := newTestService(t)
	ctx := context.Background()
	r := requests.add(vacation("2024-06-10", "2024-06-14", leave.StatusPending))
	require.NoError(t, contracts.SetActive(ctx, contractID, false))

	_, err := svc.Approve(ctx, leave.ApproveRequestRequest{ID: r.ID, ApprovedBy: "hr-1"})
	assert.ErrorIs(t, err, contract.ErrContractInactive)

	_, err = svc.UpdateVacation(ctx, leave.UpdateVacationRequest{ID: r.ID, StartDate: "2024-06-11", EndDate: "2024-06-19"})
	assert.ErrorIs(t, err, contract.ErrContractInactive)

	got, err := requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, got.Status())
}

func TestWorkspaceScope(t *testing.T) {
	svc, requests, _ := newTestService(t)
	r := requests.add(vacation("2024-06-10", "2024-06-14", leave.StatusPending))
	own := auth.WithWorkspace(context.Background(), workspaceID)
	foreign := auth.WithWorkspace(context.Background(), "ws-2")

	_, err := svc.Get(own, r.ID)
	require.NoError(t, err)

	_, err = svc.Get(foreign, r.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
	_, err = svc.Approve(foreign, leave.ApproveRequestRequest{ID: r.ID, ApprovedBy: "hr-1"})
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
	assert.ErrorIs(t, svc.Deactivate(foreign, r.ID), leave.ErrRequestNotFound)

	_, err = svc.CreateVacation(foreign, leave.CreateVacationRequest{ContractID: contractID, StartDate: "2024-07-01", EndDate: "2024-07-05"})
	assert.ErrorIs(t, err, contract.ErrContractNotFound)
	_, err = svc.ListByContract(foreign, contractID, false)
	assert.ErrorIs(t, err, contract.ErrContractNotFound)

	got, err := requests.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, got.Status())
	assert.True(t, got.Active)
}
