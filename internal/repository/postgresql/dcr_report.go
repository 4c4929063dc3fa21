package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type dcrReportRepositoryImpl struct {
	db *database.DB
}

func NewDCRReportRepository(db *database.DB) dcr.ReportRepository {
	return &dcrReportRepositoryImpl{db: db}
}

const reportColumns = `
	id, employee_id, report_date, work_status, is_holiday, status,
	start_lat, start_lon, start_place, end_lat, end_lon, end_place,
	total_distance_km, meeting_agenda, training_with, created_at, updated_at
`

func scanReport(row pgx.Row) (dcr.Report, error) {
	var rep dcr.Report
	err := row.Scan(
		&rep.ID,
		&rep.EmployeeID,
		&rep.Date,
		&rep.WorkStatus,
		&rep.IsHoliday,
		&rep.Status,
		&rep.StartLat,
		&rep.StartLon,
		&rep.StartPlace,
		&rep.EndLat,
		&rep.EndLon,
		&rep.EndPlace,
		&rep.TotalDistanceKM,
		&rep.MeetingAgenda,
		&rep.TrainingWith,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	return rep, err
}

func (r *dcrReportRepositoryImpl) Create(ctx context.Context, report dcr.Report) (dcr.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dcr_reports (
			id, employee_id, report_date, work_status, is_holiday, status,
			start_lat, start_lon, start_place, meeting_agenda, training_with,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		report.EmployeeID, report.Date, report.WorkStatus, report.IsHoliday, report.Status,
		report.StartLat, report.StartLon, report.StartPlace, report.MeetingAgenda, report.TrainingWith,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return dcr.Report{}, dcr.ErrReportExists
		}
		return dcr.Report{}, err
	}

	return report, nil
}

func (r *dcrReportRepositoryImpl) GetByID(ctx context.Context, id string) (dcr.Report, error) {
	q := GetQuerier(ctx, r.db)

	rep, err := scanReport(q.QueryRow(ctx, `SELECT `+reportColumns+` FROM dcr_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dcr.Report{}, dcr.ErrReportNotFound
		}
		return dcr.Report{}, err
	}
	return rep, nil
}

func (r *dcrReportRepositoryImpl) GetByDate(ctx context.Context, employeeID string, date time.Time) (dcr.Report, error) {
	q := GetQuerier(ctx, r.db)

	rep, err := scanReport(q.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM dcr_reports WHERE employee_id = $1 AND report_date = $2`,
		employeeID, date,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dcr.Report{}, dcr.ErrReportNotFound
		}
		return dcr.Report{}, err
	}
	return rep, nil
}

func (r *dcrReportRepositoryImpl) Update(ctx context.Context, report dcr.Report) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dcr_reports
		SET status = $2, end_lat = $3, end_lon = $4, end_place = $5,
			total_distance_km = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, report.ID, report.Status, report.EndLat, report.EndLon, report.EndPlace, report.TotalDistanceKM)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dcr.ErrReportNotFound
	}
	return nil
}

func (r *dcrReportRepositoryImpl) UpdateStatus(ctx context.Context, id string, status dcr.ReportStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE dcr_reports SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dcr.ErrReportNotFound
	}
	return nil
}

func (r *dcrReportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM dcr_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dcr.ErrReportNotFound
	}
	return nil
}

func (r *dcrReportRepositoryImpl) ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]dcr.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + reportColumns + `
		FROM dcr_reports
		WHERE employee_id = $1 AND report_date BETWEEN $2 AND $3
		ORDER BY report_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []dcr.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *dcrReportRepositoryImpl) CountCompletedBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM dcr_reports
		WHERE employee_id = $1 AND status = 'COMPLETE' AND report_date > $2 AND report_date <= $3
	`, employeeID, from, to).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *dcrReportRepositoryImpl) ListCompletedHolidayDates(ctx context.Context, employeeID string, year int, month time.Month) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT report_date
		FROM dcr_reports
		WHERE employee_id = $1
		  AND status = 'COMPLETE'
		  AND is_holiday = TRUE
		  AND EXTRACT(YEAR FROM report_date) = $2
		  AND EXTRACT(MONTH FROM report_date) = $3
		ORDER BY report_date
	`

	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *dcrReportRepositoryImpl) MonthlyStats(ctx context.Context, employeeID string, year int, month time.Month) (dcr.MonthlyStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'COMPLETE'),
			COUNT(*) FILTER (WHERE status = 'INCOMPLETE'),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COALESCE(SUM(total_distance_km), 0),
			(SELECT COUNT(*) FROM dcr_doctor_visits dv
				INNER JOIN dcr_reports dr ON dr.id = dv.report_id
				WHERE dr.employee_id = $1
				  AND EXTRACT(YEAR FROM dr.report_date) = $2
				  AND EXTRACT(MONTH FROM dr.report_date) = $3),
			(SELECT COUNT(*) FROM dcr_cs_visits cv
				INNER JOIN dcr_reports dr ON dr.id = cv.report_id
				WHERE dr.employee_id = $1
				  AND EXTRACT(YEAR FROM dr.report_date) = $2
				  AND EXTRACT(MONTH FROM dr.report_date) = $3)
		FROM dcr_reports
		WHERE employee_id = $1
		  AND EXTRACT(YEAR FROM report_date) = $2
		  AND EXTRACT(MONTH FROM report_date) = $3
	`

	var stats dcr.MonthlyStats
	err := q.QueryRow(ctx, query, employeeID, year, int(month)).Scan(
		&stats.CompleteReports,
		&stats.IncompleteReports,
		&stats.PendingReports,
		&stats.TotalDistanceKM,
		&stats.DoctorCalls,
		&stats.CSCalls,
	)
	if err != nil {
		return dcr.MonthlyStats{}, err
	}
	return stats, nil
}
