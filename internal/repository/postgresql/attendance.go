package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Mark relies on the (employee_id, date) unique index; ON CONFLICT DO
// NOTHING turns the duplicate-day race into a clean "already marked".
func (r *attendanceRepositoryImpl) Mark(ctx context.Context, entry attendance.Entry) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, date, title, report_id, week_off_for, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, entry.EmployeeID, entry.Date, entry.Title, entry.ReportID, entry.WeekOffFor)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *attendanceRepositoryImpl) Get(ctx context.Context, employeeID string, date time.Time) (attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, title, report_id, week_off_for, created_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2
	`

	var e attendance.Entry
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&e.ID, &e.EmployeeID, &e.Date, &e.Title, &e.ReportID, &e.WeekOffFor, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Entry{}, attendance.ErrEntryNotFound
		}
		return attendance.Entry{}, err
	}
	return e, nil
}

func (r *attendanceRepositoryImpl) ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, title, report_id, week_off_for, created_at
		FROM attendances
		WHERE employee_id = $1
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []attendance.Entry
	for rows.Next() {
		var e attendance.Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.Title, &e.ReportID, &e.WeekOffFor, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *attendanceRepositoryImpl) ListWeekOffRefs(ctx context.Context, employeeID string, year int, month time.Month) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT week_off_for
		FROM attendances
		WHERE employee_id = $1
		  AND title = $2
		  AND week_off_for IS NOT NULL
		  AND EXTRACT(YEAR FROM week_off_for) = $3
		  AND EXTRACT(MONTH FROM week_off_for) = $4
	`

	rows, err := q.Query(ctx, query, employeeID, attendance.TitleWeekOff, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []time.Time
	for rows.Next() {
		var ref time.Time
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
