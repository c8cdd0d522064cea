package postgresql_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/repository/postgresql"
	leaveService "github.com/cataratas-rh/cataratasrh-backend-go/internal/service/leave"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRepository_ExistsOverlap(t *testing.T) {
	setup := NewTestDatabase(t)
	contracts := postgresql.NewContractRepository(setup.DB)
	repo := postgresql.NewRequestRepository(setup.DB)
	ctx := context.Background()

	c := createContract(t, contracts, "2024-01-01", nil, contract.ContractStatusActive)

	approved, err := repo.Create(ctx, leave.Request{
		ContractID: c.ID,
		Category:   leave.CategoryVacation,
		Vacation: &leave.Vacation{
			Period: leave.DateRange{Start: date("2024-06-01"), End: date("2024-06-10")},
			Days:   10,
			Status: leave.StatusApproved,
		},
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, leave.Request{
		ContractID: c.ID,
		Category:   leave.CategoryOvertime,
		Overtime:   &leave.Overtime{Date: date("2024-07-03"), Hours: decimal.RequireFromString("2.5"), Status: leave.StatusApproved},
	})
	require.NoError(t, err)

	filter := leave.RequestFilter{
		ContractID:  c.ID,
		Category:    leave.CategoryVacation,
		Status:      leave.StatusApproved,
		Overlapping: &leave.DateRange{Start: date("2024-06-10"), End: date("2024-06-15")},
	}
	exists, err := repo.Exists(ctx, filter)
	require.NoError(t, err)
	assert.True(t, exists, "shared boundary day overlaps")

	filter.ExcludeID = approved.ID
	exists, err = repo.Exists(ctx, filter)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.Exists(ctx, leave.RequestFilter{
		ContractID:  c.ID,
		Category:    leave.CategoryOvertime,
		Status:      leave.StatusApproved,
		Overlapping: &leave.DateRange{Start: date("2024-07-01"), End: date("2024-07-05")},
	})
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.SetActive(ctx, approved.ID, false))
	filter.ExcludeID = ""
	exists, err = repo.Exists(ctx, filter)
	require.NoError(t, err)
	assert.False(t, exists, "inactive requests are ignored by default")

	got, err := repo.GetByID(ctx, approved.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 10, got.Vacation.Days)
}

func TestRequestRepository_ResignationEffectiveDate(t *testing.T) {
	setup := NewTestDatabase(t)
	contracts := postgresql.NewContractRepository(setup.DB)
	repo := postgresql.NewRequestRepository(setup.DB)
	tx := postgresql.NewTxManager(setup.DB)
	ctx := context.Background()

	c := createContract(t, contracts, "2024-01-01", nil, contract.ContractStatusActive)

	resignation, err := repo.Create(ctx, leave.Request{
		ContractID: c.ID,
		Category:   leave.CategoryResignation,
		Resignation: &leave.Resignation{
			NoticeDate:    date("2024-06-01"),
			EffectiveDate: date("2024-07-01"),
			Status:        leave.StatusAccepted,
		},
	})
	require.NoError(t, err)

	err = tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := contracts.LockForUpdate(txCtx, c.ID); err != nil {
			return err
		}
		found, err := repo.FindAcceptedResignationForUpdate(txCtx, c.ID)
		if err != nil {
			return err
		}
		return repo.UpdateResignationEffectiveDate(txCtx, found.ID, date("2024-07-06"))
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, resignation.ID)
	require.NoError(t, err)
	assert.Equal(t, date("2024-07-06"), got.Resignation.EffectiveDate)

	_, err = repo.FindAcceptedResignationForUpdate(ctx, createContract(t, contracts, "2024-01-01", nil, contract.ContractStatusActive).ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestRequestService_ConcurrentApprovalsPushResignationOnce(t *testing.T) {
	setup := NewTestDatabase(t)
	contracts := postgresql.NewContractRepository(setup.DB)
	repo := postgresql.NewRequestRepository(setup.DB)
	svc := leaveService.NewRequestService(postgresql.NewTxManager(setup.DB), repo, contracts, calendar.New(calendar.DefaultHolidayTable()))
	ctx := context.Background()

	c := createContract(t, contracts, "2024-01-01", nil, contract.ContractStatusActive)

	resignation, err := repo.Create(ctx, leave.Request{
		ContractID: c.ID,
		Category:   leave.CategoryResignation,
		Resignation: &leave.Resignation{
			NoticeDate:    date("2024-06-01"),
			EffectiveDate: date("2024-07-01"),
			Status:        leave.StatusAccepted,
		},
	})
	require.NoError(t, err)

	var ids []string
	for _, p := range []leave.DateRange{
		{Start: date("2024-06-03"), End: date("2024-06-07")},
		{Start: date("2024-06-18"), End: date("2024-06-20")},
	} {
		v, err := repo.Create(ctx, leave.Request{
			ContractID: c.ID,
			Category:   leave.CategoryVacation,
			Vacation:   &leave.Vacation{Period: p, Days: p.Days(), Status: leave.StatusPending},
		})
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}

	approver := uuid.New().String()
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = svc.Approve(ctx, leave.ApproveRequestRequest{ID: id, ApprovedBy: approver})
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, resignation.ID)
	require.NoError(t, err)
	assert.Equal(t, date("2024-07-09"), got.Resignation.EffectiveDate, "5 + 3 days, neither push lost")

	for _, id := range ids {
		v, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, v.Vacation.Status)
	}
}
