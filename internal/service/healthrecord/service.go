package healthrecord

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/healthrecord"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/export"
)

const maxExportWindowDays = 365

type HealthRecordServiceImpl struct {
	records healthrecord.HealthRecordRepository
	loc     *time.Location
	now     func() time.Time
}

func NewHealthRecordService(records healthrecord.HealthRecordRepository, loc *time.Location) healthrecord.HealthRecordService {
	return &HealthRecordServiceImpl{
		records: records,
		loc:     loc,
		now:     time.Now,
	}
}

func (s *HealthRecordServiceImpl) today() time.Time {
	loc := s.loc
	if loc == nil {
		loc = time.Local
	}
	return calendar.DateOf(s.now().In(loc))
}

func parseExamDates(performed, expiration string) (time.Time, time.Time, error) {
	p, err := calendar.ParseDate(performed)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := calendar.ParseDate(expiration)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return p, e, nil
}

// load hides records of other workspaces behind ErrHealthRecordNotFound.
func (s *HealthRecordServiceImpl) load(ctx context.Context, id string) (healthrecord.HealthRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return healthrecord.HealthRecord{}, err
	}
	if !auth.InWorkspace(ctx, record.WorkspaceID) {
		return healthrecord.HealthRecord{}, healthrecord.ErrHealthRecordNotFound
	}
	return record, nil
}

func (s *HealthRecordServiceImpl) Create(ctx context.Context, req healthrecord.CreateHealthRecordRequest) (healthrecord.HealthRecordResponse, error) {
	if workspaceID, ok := auth.WorkspaceFromContext(ctx); ok {
		req.WorkspaceID = workspaceID
	}
	if err := req.Validate(); err != nil {
		return healthrecord.HealthRecordResponse{}, err
	}
	performed, expiration, err := parseExamDates(req.PerformedDate, req.ExpirationDate)
	if err != nil {
		return healthrecord.HealthRecordResponse{}, err
	}

	created, err := s.records.Create(ctx, healthrecord.HealthRecord{
		WorkspaceID:    req.WorkspaceID,
		EmployeeID:     req.EmployeeID,
		ExamType:       healthrecord.ExamType(req.ExamType),
		Result:         healthrecord.Result(req.Result),
		PerformedDate:  performed,
		ExpirationDate: expiration,
		Current:        healthrecord.IsCurrentAt(expiration, s.today()),
	})
	if err != nil {
		return healthrecord.HealthRecordResponse{}, fmt.Errorf("failed to create health record: %w", err)
	}

	return healthrecord.NewHealthRecordResponse(created), nil
}

func (s *HealthRecordServiceImpl) Get(ctx context.Context, id string) (healthrecord.HealthRecordResponse, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return healthrecord.HealthRecordResponse{}, err
	}
	return healthrecord.NewHealthRecordResponse(record), nil
}

func (s *HealthRecordServiceImpl) List(ctx context.Context, filter healthrecord.HealthRecordFilter) ([]healthrecord.HealthRecordResponse, error) {
	if workspaceID, ok := auth.WorkspaceFromContext(ctx); ok {
		filter.WorkspaceID = workspaceID
	}
	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}

	responses := make([]healthrecord.HealthRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, healthrecord.NewHealthRecordResponse(r))
	}
	return responses, nil
}

func (s *HealthRecordServiceImpl) Update(ctx context.Context, req healthrecord.UpdateHealthRecordRequest) (healthrecord.HealthRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return healthrecord.HealthRecordResponse{}, err
	}
	performed, expiration, err := parseExamDates(req.PerformedDate, req.ExpirationDate)
	if err != nil {
		return healthrecord.HealthRecordResponse{}, err
	}

	record, err := s.load(ctx, req.ID)
	if err != nil {
		return healthrecord.HealthRecordResponse{}, err
	}

	record.ExamType = healthrecord.ExamType(req.ExamType)
	record.Result = healthrecord.Result(req.Result)
	record.PerformedDate = performed
	record.ExpirationDate = expiration
	record.Current = healthrecord.IsCurrentAt(expiration, s.today())

	if err := s.records.Update(ctx, record); err != nil {
		return healthrecord.HealthRecordResponse{}, fmt.Errorf("failed to update health record: %w", err)
	}
	return healthrecord.NewHealthRecordResponse(record), nil
}

func (s *HealthRecordServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.records.SetActive(ctx, id, false)
}

func (s *HealthRecordServiceImpl) Reactivate(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.records.SetActive(ctx, id, true)
}

func (s *HealthRecordServiceImpl) BulkDeactivate(ctx context.Context, req healthrecord.BulkDeactivateRequest) (healthrecord.BulkDeactivateResponse, error) {
	if err := req.Validate(); err != nil {
		return healthrecord.BulkDeactivateResponse{}, err
	}

	workspaceID, _ := auth.WorkspaceFromContext(ctx)
	n, err := s.records.DeactivateMany(ctx, req.IDs, workspaceID)
	if err != nil {
		return healthrecord.BulkDeactivateResponse{}, fmt.Errorf("failed to deactivate health records: %w", err)
	}

	slog.Info("Health records deactivated", "requested", len(req.IDs), "deactivated", n)
	return healthrecord.BulkDeactivateResponse{Deactivated: n}, nil
}

func (s *HealthRecordServiceImpl) ExpireStale(ctx context.Context) (int64, error) {
	today := s.today()

	n, err := s.records.ExpireStale(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to expire health records: %w", err)
	}

	slog.Info("Health records expired", "date", calendar.FormatDate(today), "count", n)
	return n, nil
}

var exportHeaders = []string{"Employee ID", "Exam Type", "Result", "Performed", "Expires", "Days Left"}

func (s *HealthRecordServiceImpl) ExportExpiring(ctx context.Context, withinDays int) (*bytes.Buffer, error) {
	if withinDays < 0 || withinDays > maxExportWindowDays {
		return nil, healthrecord.ErrInvalidExportWindow
	}

	today := s.today()
	workspaceID, _ := auth.WorkspaceFromContext(ctx)
	records, err := s.records.ListExpiring(ctx, workspaceID, today, calendar.AddDays(today, withinDays))
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring health records: %w", err)
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.EmployeeID,
			string(r.ExamType),
			string(r.Result),
			calendar.FormatDate(r.PerformedDate),
			calendar.FormatDate(r.ExpirationDate),
			calendar.DaysInclusive(today, r.ExpirationDate) - 1,
		})
	}

	return export.XLSX(export.Table{
		Sheet:   "Expiring",
		Headers: exportHeaders,
		Rows:    rows,
	})
}
