package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type contractRepositoryImpl struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepositoryImpl{db: db}
}

const contractColumns = `id, workspace_id, employee_id, position_id, start_date, end_date, status, active, created_at, updated_at`

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.WorkspaceID, &c.EmployeeID, &c.PositionID,
		&c.StartDate, &c.EndDate, &c.Status, &c.Active,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *contractRepositoryImpl) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO contracts (id, workspace_id, employee_id, position_id, start_date, end_date, status, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW(), NOW())
		RETURNING active, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		c.ID, c.WorkspaceID, c.EmployeeID, c.PositionID, c.StartDate, c.EndDate, c.Status,
	).Scan(&c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("insert contract: %w", err)
	}

	return c, nil
}

func (r *contractRepositoryImpl) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, err
	}
	return c, nil
}

func (r *contractRepositoryImpl) List(ctx context.Context, filter contract.ContractFilter) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if !filter.IncludeInactive {
		whereClause += " AND active = TRUE"
	}
	if filter.WorkspaceID != "" {
		whereClause += fmt.Sprintf(" AND workspace_id = $%d", argIndex)
		args = append(args, filter.WorkspaceID)
		argIndex++
	}
	if filter.EmployeeID != "" {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", argIndex)
		args = append(args, filter.EmployeeID)
		argIndex++
	}

	query := `SELECT ` + contractColumns + ` FROM contracts ` + whereClause + ` ORDER BY start_date DESC, id`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (r *contractRepositoryImpl) UpdateDates(ctx context.Context, id string, start time.Time, end *time.Time, status contract.ContractStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET start_date = $2, end_date = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, start, end, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}
	return nil
}

func (r *contractRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE contracts SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}
	return nil
}

func (r *contractRepositoryImpl) DeactivateMany(ctx context.Context, ids []string, workspaceID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE contracts SET active = FALSE, updated_at = NOW() WHERE id = ANY($1::uuid[]) AND active = TRUE`
	args := []interface{}{ids}
	if workspaceID != "" {
		query += ` AND workspace_id = $2`
		args = append(args, workspaceID)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deactivate contracts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *contractRepositoryImpl) LockForUpdate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var locked string
	err := q.QueryRow(ctx, `SELECT id FROM contracts WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if noRows(err) {
			return contract.ErrContractNotFound
		}
		return err
	}
	return nil
}

// SweepStatuses runs one conditional UPDATE per target status. The
// predicates are mutually exclusive, so their order does not matter, and
// the status <> target guard makes a repeated run a no-op.
func (r *contractRepositoryImpl) SweepStatuses(ctx context.Context, today time.Time) (contract.SweepResult, error) {
	q := GetQuerier(ctx, r.db)

	var result contract.SweepResult

	sweeps := []struct {
		status    contract.ContractStatus
		predicate string
		affected  *int64
	}{
		{contract.ContractStatusPending, `start_date > $1`, &result.Pending},
		{contract.ContractStatusActive, `start_date <= $1 AND (end_date IS NULL OR end_date >= $1)`, &result.Active},
		{contract.ContractStatusFinished, `start_date <= $1 AND end_date < $1`, &result.Finished},
	}

	for _, s := range sweeps {
		query := `UPDATE contracts SET status = $2, updated_at = NOW() WHERE status <> $2 AND ` + s.predicate
		tag, err := q.Exec(ctx, query, today, s.status)
		if err != nil {
			return result, fmt.Errorf("sweep contracts to %s: %w", s.status, err)
		}
		*s.affected = tag.RowsAffected()
	}

	return result, nil
}
