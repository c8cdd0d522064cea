package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/healthrecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interval is a fixed-period Schedule for driving the scheduler quickly.
type interval time.Duration

func every(d time.Duration) Schedule {
	return interval(d)
}

func (i interval) Next(after time.Time) time.Time {
	return after.Add(time.Duration(i))
}

func (i interval) String() string {
	return "every " + time.Duration(i).String()
}

func TestDailyAt_Next(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	s := DailyAt(0, 0, loc)

	tests := []struct {
		after time.Time
		want  time.Time
	}{
		{time.Date(2024, 3, 15, 13, 0, 0, 0, loc), time.Date(2024, 3, 16, 0, 0, 0, 0, loc)},
		{time.Date(2024, 3, 15, 0, 0, 0, 0, loc), time.Date(2024, 3, 16, 0, 0, 0, 0, loc)},
		{time.Date(2024, 12, 31, 23, 59, 0, 0, loc), time.Date(2025, 1, 1, 0, 0, 0, 0, loc)},
		// 02:30 UTC is still the previous evening in ART.
		{time.Date(2024, 3, 16, 2, 30, 0, 0, time.UTC), time.Date(2024, 3, 16, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		assert.True(t, tt.want.Equal(s.Next(tt.after)), "after %s: got %s", tt.after, s.Next(tt.after))
	}
}

func TestRunOnce_ContinuesAfterFailure(t *testing.T) {
	s := NewScheduler()

	var ran []string
	s.AddJob("fails", every(time.Hour), func(context.Context) error {
		ran = append(ran, "fails")
		return errors.New("boom")
	})
	s.AddJob("panics", every(time.Hour), func(context.Context) error {
		ran = append(ran, "panics")
		panic("unexpected")
	})
	s.AddJob("ok", every(time.Hour), func(context.Context) error {
		ran = append(ran, "ok")
		return nil
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fails: boom")
	assert.Equal(t, []string{"fails", "panics", "ok"}, ran)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()

	runs := make(chan struct{}, 16)
	s.AddJob("tick", every(5*time.Millisecond), func(context.Context) error {
		select {
		case runs <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	for i := 0; i < 3; i++ {
		select {
		case <-runs:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
	s.Stop()
}

type stubContractService struct {
	contract.ContractService
	calls int
}

func (s *stubContractService) RecomputeStatuses(context.Context) (contract.SweepResult, error) {
	s.calls++
	return contract.SweepResult{}, nil
}

type stubHealthRecordService struct {
	healthrecord.HealthRecordService
	calls int
	err   error
}

func (s *stubHealthRecordService) ExpireStale(context.Context) (int64, error) {
	s.calls++
	return 0, s.err
}

func TestLifecycleJobs(t *testing.T) {
	contracts := &stubContractService{}
	records := &stubHealthRecordService{err: errors.New("db down")}

	s := NewScheduler()
	NewLifecycleJobs(contracts, records, time.UTC).RegisterJobs(s)

	assert.Equal(t, []string{JobRecomputeContractStatuses, JobExpireHealthRecords}, s.Jobs())

	err := s.RunOnce(context.Background())
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 1, contracts.calls)
	assert.Equal(t, 1, records.calls)

	records.err = nil
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, 2, contracts.calls, "sweeps are safe to repeat")
}
