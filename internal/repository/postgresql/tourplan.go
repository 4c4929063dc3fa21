package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/tourplan"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type tourPlanRepositoryImpl struct {
	db *database.DB
}

func NewTourPlanRepository(db *database.DB) tourplan.TourPlanRepository {
	return &tourPlanRepositoryImpl{db: db}
}

func (r *tourPlanRepositoryImpl) BulkCreate(ctx context.Context, entries []tourplan.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tour_plan_entries (id, employee_id, year, month, date, place, remarks, approved, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
	`

	for _, e := range entries {
		if _, err := q.Exec(ctx, query, e.EmployeeID, e.Year, e.Month, e.Date, e.Place, e.Remarks); err != nil {
			return err
		}
	}
	return nil
}

func (r *tourPlanRepositoryImpl) ListMonth(ctx context.Context, employeeID string, year int, month int) ([]tourplan.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, date, place, remarks, approved, created_at, updated_at
		FROM tour_plan_entries
		WHERE employee_id = $1 AND year = $2 AND month = $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []tourplan.Entry
	for rows.Next() {
		var e tourplan.Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Year, &e.Month, &e.Date, &e.Place, &e.Remarks, &e.Approved, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *tourPlanRepositoryImpl) HasMonth(ctx context.Context, employeeID string, year int, month int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tour_plan_entries WHERE employee_id = $1 AND year = $2 AND month = $3
		)
	`, employeeID, year, month).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *tourPlanRepositoryImpl) GetByDate(ctx context.Context, employeeID string, date time.Time) (tourplan.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, date, place, remarks, approved, created_at, updated_at
		FROM tour_plan_entries
		WHERE employee_id = $1 AND date = $2
	`

	var e tourplan.Entry
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&e.ID, &e.EmployeeID, &e.Year, &e.Month, &e.Date, &e.Place, &e.Remarks, &e.Approved, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tourplan.Entry{}, tourplan.ErrEntryNotFound
		}
		return tourplan.Entry{}, err
	}
	return e, nil
}

func (r *tourPlanRepositoryImpl) UpdateEntry(ctx context.Context, entry tourplan.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tour_plan_entries
		SET place = $2, remarks = $3, approved = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, entry.ID, entry.Place, entry.Remarks, entry.Approved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tourplan.ErrEntryNotFound
	}
	return nil
}

func (r *tourPlanRepositoryImpl) ApproveDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tour_plan_entries
		SET approved = TRUE, updated_at = NOW()
		WHERE employee_id = $1 AND date = $2 AND approved = FALSE
	`

	tag, err := q.Exec(ctx, query, employeeID, date)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *tourPlanRepositoryImpl) GetFlags(ctx context.Context, employeeID string) (tourplan.Flags, error) {
	q := GetQuerier(ctx, r.db)

	var f tourplan.Flags
	err := q.QueryRow(ctx, `
		SELECT employee_id, extra_day_for_create, extra_day_for_approve
		FROM tour_plan_flags
		WHERE employee_id = $1
	`, employeeID).Scan(&f.EmployeeID, &f.ExtraDayForCreate, &f.ExtraDayForApprove)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tourplan.Flags{EmployeeID: employeeID}, nil
		}
		return tourplan.Flags{}, err
	}
	return f, nil
}

func (r *tourPlanRepositoryImpl) SetFlags(ctx context.Context, flags tourplan.Flags) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tour_plan_flags (employee_id, extra_day_for_create, extra_day_for_approve, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (employee_id) DO UPDATE
		SET extra_day_for_create = EXCLUDED.extra_day_for_create,
			extra_day_for_approve = EXCLUDED.extra_day_for_approve,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, flags.EmployeeID, flags.ExtraDayForCreate, flags.ExtraDayForApprove)
	return err
}
