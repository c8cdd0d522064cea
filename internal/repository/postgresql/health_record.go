package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/healthrecord"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type healthRecordRepositoryImpl struct {
	db *database.DB
}

func NewHealthRecordRepository(db *database.DB) healthrecord.HealthRecordRepository {
	return &healthRecordRepositoryImpl{db: db}
}

const healthRecordColumns = `id, workspace_id, employee_id, exam_type, result, performed_date, expiration_date, current, active, created_at, updated_at`

func scanHealthRecord(row pgx.Row) (healthrecord.HealthRecord, error) {
	var h healthrecord.HealthRecord
	err := row.Scan(
		&h.ID, &h.WorkspaceID, &h.EmployeeID, &h.ExamType, &h.Result,
		&h.PerformedDate, &h.ExpirationDate, &h.Current, &h.Active,
		&h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

func (r *healthRecordRepositoryImpl) queryRecords(ctx context.Context, query string, args ...interface{}) ([]healthrecord.HealthRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []healthrecord.HealthRecord
	for rows.Next() {
		h, err := scanHealthRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, h)
	}
	return records, rows.Err()
}

func (r *healthRecordRepositoryImpl) Create(ctx context.Context, h healthrecord.HealthRecord) (healthrecord.HealthRecord, error) {
	q := GetQuerier(ctx, r.db)

	if h.ID == "" {
		h.ID = uuid.New().String()
	}

	query := `
		INSERT INTO health_records (id, workspace_id, employee_id, exam_type, result, performed_date, expiration_date, current, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())
		RETURNING active, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		h.ID, h.WorkspaceID, h.EmployeeID, string(h.ExamType), string(h.Result), h.PerformedDate, h.ExpirationDate, h.Current,
	).Scan(&h.Active, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return healthrecord.HealthRecord{}, fmt.Errorf("insert health record: %w", err)
	}

	return h, nil
}

func (r *healthRecordRepositoryImpl) GetByID(ctx context.Context, id string) (healthrecord.HealthRecord, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHealthRecord(q.QueryRow(ctx, `SELECT `+healthRecordColumns+` FROM health_records WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return healthrecord.HealthRecord{}, healthrecord.ErrHealthRecordNotFound
		}
		return healthrecord.HealthRecord{}, err
	}
	return h, nil
}

func (r *healthRecordRepositoryImpl) List(ctx context.Context, filter healthrecord.HealthRecordFilter) ([]healthrecord.HealthRecord, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}

	if !filter.IncludeInactive {
		whereClause += " AND active = TRUE"
	}
	if filter.WorkspaceID != "" {
		whereClause += fmt.Sprintf(" AND workspace_id = $%d", len(args)+1)
		args = append(args, filter.WorkspaceID)
	}
	if filter.EmployeeID != "" {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", len(args)+1)
		args = append(args, filter.EmployeeID)
	}

	query := `SELECT ` + healthRecordColumns + ` FROM health_records ` + whereClause + ` ORDER BY expiration_date DESC, id`
	return r.queryRecords(ctx, query, args...)
}

func (r *healthRecordRepositoryImpl) Update(ctx context.Context, h healthrecord.HealthRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE health_records
		SET exam_type = $2, result = $3, performed_date = $4, expiration_date = $5, current = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		h.ID, string(h.ExamType), string(h.Result), h.PerformedDate, h.ExpirationDate, h.Current,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return healthrecord.ErrHealthRecordNotFound
	}
	return nil
}

func (r *healthRecordRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE health_records SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return healthrecord.ErrHealthRecordNotFound
	}
	return nil
}

func (r *healthRecordRepositoryImpl) DeactivateMany(ctx context.Context, ids []string, workspaceID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE health_records SET active = FALSE, updated_at = NOW() WHERE id = ANY($1::uuid[]) AND active = TRUE`
	args := []interface{}{ids}
	if workspaceID != "" {
		query += ` AND workspace_id = $2`
		args = append(args, workspaceID)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deactivate health records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *healthRecordRepositoryImpl) ListExpiring(ctx context.Context, workspaceID string, from, to time.Time) ([]healthrecord.HealthRecord, error) {
	whereClause := `WHERE active = TRUE AND current = TRUE AND expiration_date BETWEEN $1 AND $2`
	args := []interface{}{from, to}
	if workspaceID != "" {
		whereClause += ` AND workspace_id = $3`
		args = append(args, workspaceID)
	}

	query := `SELECT ` + healthRecordColumns + ` FROM health_records ` + whereClause + ` ORDER BY expiration_date, employee_id`
	return r.queryRecords(ctx, query, args...)
}

func (r *healthRecordRepositoryImpl) ExpireStale(ctx context.Context, today time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE health_records
		SET current = FALSE, updated_at = NOW()
		WHERE current = TRUE AND expiration_date < $1
	`, today)
	if err != nil {
		return 0, fmt.Errorf("expire health records: %w", err)
	}
	return tag.RowsAffected(), nil
}
