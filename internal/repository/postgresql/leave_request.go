package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) leave.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const requestSelect = `
	SELECT r.id, r.contract_id, r.category, r.active,
		   r.decided_by, r.decided_at, r.rejection_reason,
		   r.created_at, r.updated_at,
		   v.start_date, v.end_date, v.days, v.status,
		   l.start_date, l.end_date, l.reason, l.status,
		   o.date, o.hours::text, o.status,
		   s.notice_date, s.effective_date, s.status
	FROM requests r
	LEFT JOIN vacations v ON v.request_id = r.id
	LEFT JOIN licenses l ON l.request_id = r.id
	LEFT JOIN overtimes o ON o.request_id = r.id
	LEFT JOIN resignations s ON s.request_id = r.id
`

// Period bounds shared by every dated payload. Overtime is a one-day period,
// resignations have none and never match an overlap predicate.
const (
	periodStart = `COALESCE(v.start_date, l.start_date, o.date)`
	periodEnd   = `COALESCE(v.end_date, l.end_date, o.date)`
	payloadStat = `COALESCE(v.status, l.status, o.status, s.status)`
)

func scanRequest(row pgx.Row) (leave.Request, error) {
	var (
		req leave.Request

		vStart, vEnd  *time.Time
		vDays         *int
		vStatus       *string
		lStart, lEnd  *time.Time
		lReason       *string
		lStatus       *string
		oDate         *time.Time
		oHours        *string
		oStatus       *string
		sNotice, sEff *time.Time
		sStatus       *string
	)

	err := row.Scan(
		&req.ID, &req.ContractID, &req.Category, &req.Active,
		&req.DecidedBy, &req.DecidedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
		&vStart, &vEnd, &vDays, &vStatus,
		&lStart, &lEnd, &lReason, &lStatus,
		&oDate, &oHours, &oStatus,
		&sNotice, &sEff, &sStatus,
	)
	if err != nil {
		return leave.Request{}, err
	}

	switch req.Category {
	case leave.CategoryVacation:
		if vStart == nil {
			return leave.Request{}, fmt.Errorf("request %s: missing vacation row", req.ID)
		}
		req.Vacation = &leave.Vacation{
			Period: leave.DateRange{Start: *vStart, End: *vEnd},
			Days:   *vDays,
			Status: leave.RequestStatus(*vStatus),
		}
	case leave.CategoryLicense:
		if lStart == nil {
			return leave.Request{}, fmt.Errorf("request %s: missing license row", req.ID)
		}
		req.License = &leave.License{
			Period: leave.DateRange{Start: *lStart, End: *lEnd},
			Reason: *lReason,
			Status: leave.RequestStatus(*lStatus),
		}
	case leave.CategoryOvertime:
		if oDate == nil {
			return leave.Request{}, fmt.Errorf("request %s: missing overtime row", req.ID)
		}
		hours, err := decimal.NewFromString(*oHours)
		if err != nil {
			return leave.Request{}, fmt.Errorf("request %s: parse hours: %w", req.ID, err)
		}
		req.Overtime = &leave.Overtime{
			Date:   *oDate,
			Hours:  hours,
			Status: leave.RequestStatus(*oStatus),
		}
	case leave.CategoryResignation:
		if sNotice == nil {
			return leave.Request{}, fmt.Errorf("request %s: missing resignation row", req.ID)
		}
		req.Resignation = &leave.Resignation{
			NoticeDate:    *sNotice,
			EffectiveDate: *sEff,
			Status:        leave.RequestStatus(*sStatus),
		}
	}

	return req, nil
}

// buildRequestWhere is the single place the soft-delete default is applied.
func buildRequestWhere(filter leave.RequestFilter) (string, []interface{}) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if !filter.IncludeInactive {
		whereClause += " AND r.active = TRUE"
	}
	if filter.ContractID != "" {
		whereClause += fmt.Sprintf(" AND r.contract_id = $%d", argIndex)
		args = append(args, filter.ContractID)
		argIndex++
	}
	if filter.Category != "" {
		whereClause += fmt.Sprintf(" AND r.category = $%d", argIndex)
		args = append(args, string(filter.Category))
		argIndex++
	}
	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND %s = $%d", payloadStat, argIndex)
		args = append(args, string(filter.Status))
		argIndex++
	}
	if filter.ExcludeID != "" {
		whereClause += fmt.Sprintf(" AND r.id <> $%d", argIndex)
		args = append(args, filter.ExcludeID)
		argIndex++
	}
	if filter.Overlapping != nil {
		whereClause += fmt.Sprintf(" AND %s <= $%d AND %s >= $%d", periodStart, argIndex, periodEnd, argIndex+1)
		args = append(args, filter.Overlapping.End, filter.Overlapping.Start)
		argIndex += 2
	}

	return whereClause, args
}

func (r *requestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	err := NewTxManager(r.db).WithinTx(ctx, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		err := q.QueryRow(txCtx, `
			INSERT INTO requests (id, contract_id, category, active, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, NOW(), NOW())
			RETURNING active, created_at, updated_at
		`, request.ID, request.ContractID, string(request.Category)).Scan(&request.Active, &request.CreatedAt, &request.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert request: %w", err)
		}

		switch {
		case request.Vacation != nil:
			v := request.Vacation
			_, err = q.Exec(txCtx,
				`INSERT INTO vacations (request_id, start_date, end_date, days, status) VALUES ($1, $2, $3, $4, $5)`,
				request.ID, v.Period.Start, v.Period.End, v.Days, string(v.Status))
		case request.License != nil:
			l := request.License
			_, err = q.Exec(txCtx,
				`INSERT INTO licenses (request_id, start_date, end_date, reason, status) VALUES ($1, $2, $3, $4, $5)`,
				request.ID, l.Period.Start, l.Period.End, l.Reason, string(l.Status))
		case request.Overtime != nil:
			o := request.Overtime
			_, err = q.Exec(txCtx,
				`INSERT INTO overtimes (request_id, date, hours, status) VALUES ($1, $2, $3::numeric, $4)`,
				request.ID, o.Date, o.Hours.String(), string(o.Status))
		case request.Resignation != nil:
			s := request.Resignation
			_, err = q.Exec(txCtx,
				`INSERT INTO resignations (request_id, notice_date, effective_date, status) VALUES ($1, $2, $3, $4)`,
				request.ID, s.NoticeDate, s.EffectiveDate, string(s.Status))
		default:
			return fmt.Errorf("request %s has no payload", request.ID)
		}
		if err != nil {
			return fmt.Errorf("insert %s payload: %w", request.Category, err)
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	return request, nil
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	return r.getByID(ctx, id, "")
}

func (r *requestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	return r.getByID(ctx, id, " FOR UPDATE OF r")
}

func (r *requestRepositoryImpl) getByID(ctx context.Context, id, lock string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanRequest(q.QueryRow(ctx, requestSelect+" WHERE r.id = $1"+lock, id))
	if err != nil {
		if noRows(err) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args := buildRequestWhere(filter)
	rows, err := q.Query(ctx, requestSelect+whereClause+" ORDER BY r.created_at DESC, r.id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *requestRepositoryImpl) Exists(ctx context.Context, filter leave.RequestFilter) (bool, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args := buildRequestWhere(filter)
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM requests r
			LEFT JOIN vacations v ON v.request_id = r.id
			LEFT JOIN licenses l ON l.request_id = r.id
			LEFT JOIN overtimes o ON o.request_id = r.id
			LEFT JOIN resignations s ON s.request_id = r.id
			` + whereClause + `
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *requestRepositoryImpl) UpdateVacationPeriod(ctx context.Context, id string, period leave.DateRange, days int) error {
	return NewTxManager(r.db).WithinTx(ctx, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		tag, err := q.Exec(txCtx,
			`UPDATE vacations SET start_date = $2, end_date = $3, days = $4 WHERE request_id = $1`,
			id, period.Start, period.End, days)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return leave.ErrRequestNotFound
		}
		return r.touch(txCtx, id)
	})
}

func (r *requestRepositoryImpl) UpdateDecision(ctx context.Context, request leave.Request) error {
	table, ok := payloadTables[request.Category]
	if !ok {
		return fmt.Errorf("unknown category %q", request.Category)
	}

	return NewTxManager(r.db).WithinTx(ctx, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		tag, err := q.Exec(txCtx, `
			UPDATE requests
			SET decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = NOW()
			WHERE id = $1
		`, request.ID, request.DecidedBy, request.DecidedAt, request.RejectionReason)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return leave.ErrRequestNotFound
		}

		_, err = q.Exec(txCtx, `UPDATE `+table+` SET status = $2 WHERE request_id = $1`, request.ID, string(request.Status()))
		return err
	})
}

var payloadTables = map[leave.Category]string{
	leave.CategoryVacation:    "vacations",
	leave.CategoryLicense:     "licenses",
	leave.CategoryOvertime:    "overtimes",
	leave.CategoryResignation: "resignations",
}

func (r *requestRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE requests SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (r *requestRepositoryImpl) FindAcceptedResignationForUpdate(ctx context.Context, contractID string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := requestSelect + `
		WHERE r.contract_id = $1
		  AND r.category = 'resignation'
		  AND r.active = TRUE
		  AND s.status = 'accepted'
		ORDER BY r.created_at DESC
		LIMIT 1
		FOR UPDATE OF r
	`
	req, err := scanRequest(q.QueryRow(ctx, query, contractID))
	if err != nil {
		if noRows(err) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) UpdateResignationEffectiveDate(ctx context.Context, id string, effective time.Time) error {
	return NewTxManager(r.db).WithinTx(ctx, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		tag, err := q.Exec(txCtx, `UPDATE resignations SET effective_date = $2 WHERE request_id = $1`, id, effective)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return leave.ErrRequestNotFound
		}
		return r.touch(txCtx, id)
	})
}

func (r *requestRepositoryImpl) touch(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `UPDATE requests SET updated_at = NOW() WHERE id = $1`, id)
	return err
}
