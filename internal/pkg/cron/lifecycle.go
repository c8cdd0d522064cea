package cron

import (
	"context"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/healthrecord"
)

const (
	JobRecomputeContractStatuses = "recompute_contract_statuses"
	JobExpireHealthRecords       = "expire_health_records"
)

// LifecycleJobs contains the daily status sweeps
type LifecycleJobs struct {
	contractService     contract.ContractService
	healthRecordService healthrecord.HealthRecordService
	loc                 *time.Location
}

// NewLifecycleJobs creates lifecycle cron jobs that fire at local midnight in loc
func NewLifecycleJobs(contractService contract.ContractService, healthRecordService healthrecord.HealthRecordService, loc *time.Location) *LifecycleJobs {
	return &LifecycleJobs{
		contractService:     contractService,
		healthRecordService: healthRecordService,
		loc:                 loc,
	}
}

// RegisterJobs registers all lifecycle cron jobs
func (j *LifecycleJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		JobRecomputeContractStatuses,
		DailyAt(0, 0, j.loc),
		j.RecomputeContractStatuses,
	)

	scheduler.AddJob(
		JobExpireHealthRecords,
		DailyAt(0, 0, j.loc),
		j.ExpireHealthRecords,
	)
}

// RecomputeContractStatuses moves contracts between pending, active and finished
func (j *LifecycleJobs) RecomputeContractStatuses(ctx context.Context) error {
	_, err := j.contractService.RecomputeStatuses(ctx)
	return err
}

// ExpireHealthRecords clears the current flag on records past their expiration date
func (j *LifecycleJobs) ExpireHealthRecords(ctx context.Context) error {
	_, err := j.healthRecordService.ExpireStale(ctx)
	return err
}
