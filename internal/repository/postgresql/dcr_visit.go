package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type dcrVisitRepositoryImpl struct {
	db *database.DB
}

func NewDCRVisitRepository(db *database.DB) dcr.VisitRepository {
	return &dcrVisitRepositoryImpl{db: db}
}

const doctorVisitColumns = `
	dv.id, dv.report_id, dv.pair_key, dv.doctor_id, dv.status, dv.work_with,
	dv.remarks, dv.photo_url, dv.completed_lat, dv.completed_lon, dv.completed_at, dv.created_at
`

const csVisitColumns = `
	cv.id, cv.report_id, cv.pair_key, cv.name, cv.kind, cv.status, cv.work_with,
	cv.remarks, cv.photo_url, cv.completed_lat, cv.completed_lon, cv.completed_at, cv.created_at
`

func scanDoctorVisit(row pgx.Row) (dcr.DoctorVisit, error) {
	var v dcr.DoctorVisit
	err := row.Scan(
		&v.ID,
		&v.ReportID,
		&v.PairKey,
		&v.DoctorID,
		&v.Status,
		&v.WorkWith,
		&v.Remarks,
		&v.PhotoURL,
		&v.CompletedLat,
		&v.CompletedLon,
		&v.CompletedAt,
		&v.CreatedAt,
	)
	return v, err
}

func scanCSVisit(row pgx.Row) (dcr.CSVisit, error) {
	var v dcr.CSVisit
	err := row.Scan(
		&v.ID,
		&v.ReportID,
		&v.PairKey,
		&v.Name,
		&v.Kind,
		&v.Status,
		&v.WorkWith,
		&v.Remarks,
		&v.PhotoURL,
		&v.CompletedLat,
		&v.CompletedLon,
		&v.CompletedAt,
		&v.CreatedAt,
	)
	return v, err
}

func (r *dcrVisitRepositoryImpl) AddDoctorVisit(ctx context.Context, visit dcr.DoctorVisit) (dcr.DoctorVisit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dcr_doctor_visits (id, report_id, pair_key, doctor_id, status, work_with, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		visit.ReportID, visit.PairKey, visit.DoctorID, visit.Status, visit.WorkWith,
	).Scan(&visit.ID, &visit.CreatedAt)
	if err != nil {
		return dcr.DoctorVisit{}, err
	}
	return visit, nil
}

func (r *dcrVisitRepositoryImpl) AddCSVisit(ctx context.Context, visit dcr.CSVisit) (dcr.CSVisit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dcr_cs_visits (id, report_id, pair_key, name, kind, status, work_with, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		visit.ReportID, visit.PairKey, visit.Name, visit.Kind, visit.Status, visit.WorkWith,
	).Scan(&visit.ID, &visit.CreatedAt)
	if err != nil {
		return dcr.CSVisit{}, err
	}
	return visit, nil
}

func (r *dcrVisitRepositoryImpl) GetDoctorVisit(ctx context.Context, id string) (dcr.DoctorVisit, error) {
	q := GetQuerier(ctx, r.db)

	v, err := scanDoctorVisit(q.QueryRow(ctx,
		`SELECT `+doctorVisitColumns+` FROM dcr_doctor_visits dv WHERE dv.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dcr.DoctorVisit{}, dcr.ErrVisitNotFound
		}
		return dcr.DoctorVisit{}, err
	}
	return v, nil
}

func (r *dcrVisitRepositoryImpl) GetCSVisit(ctx context.Context, id string) (dcr.CSVisit, error) {
	q := GetQuerier(ctx, r.db)

	v, err := scanCSVisit(q.QueryRow(ctx,
		`SELECT `+csVisitColumns+` FROM dcr_cs_visits cv WHERE cv.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dcr.CSVisit{}, dcr.ErrVisitNotFound
		}
		return dcr.CSVisit{}, err
	}
	return v, nil
}

func (r *dcrVisitRepositoryImpl) GetDoctorVisitPairCopy(ctx context.Context, pairKey, excludeReportID string) (dcr.DoctorVisit, error) {
	q := GetQuerier(ctx, r.db)

	v, err := scanDoctorVisit(q.QueryRow(ctx,
		`SELECT `+doctorVisitColumns+` FROM dcr_doctor_visits dv WHERE dv.pair_key = $1 AND dv.report_id <> $2`,
		pairKey, excludeReportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dcr.DoctorVisit{}, dcr.ErrVisitNotFound
		}
		return dcr.DoctorVisit{}, err
	}
	return v, nil
}

func (r *dcrVisitRepositoryImpl) GetCSVisitPairCopy(ctx context.Context, pairKey, excludeReportID string) (dcr.CSVisit, error) {
	q := GetQuerier(ctx, r.db)

	v, err := scanCSVisit(q.QueryRow(ctx,
		`SELECT `+csVisitColumns+` FROM dcr_cs_visits cv WHERE cv.pair_key = $1 AND cv.report_id <> $2`,
		pairKey, excludeReportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dcr.CSVisit{}, dcr.ErrVisitNotFound
		}
		return dcr.CSVisit{}, err
	}
	return v, nil
}

func (r *dcrVisitRepositoryImpl) UpdateDoctorVisit(ctx context.Context, visit dcr.DoctorVisit) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dcr_doctor_visits
		SET status = $2, remarks = $3, photo_url = $4,
			completed_lat = $5, completed_lon = $6, completed_at = $7
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		visit.ID, visit.Status, visit.Remarks, visit.PhotoURL,
		visit.CompletedLat, visit.CompletedLon, visit.CompletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dcr.ErrVisitNotFound
	}
	return nil
}

func (r *dcrVisitRepositoryImpl) UpdateCSVisit(ctx context.Context, visit dcr.CSVisit) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dcr_cs_visits
		SET status = $2, remarks = $3, photo_url = $4,
			completed_lat = $5, completed_lon = $6, completed_at = $7
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		visit.ID, visit.Status, visit.Remarks, visit.PhotoURL,
		visit.CompletedLat, visit.CompletedLon, visit.CompletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dcr.ErrVisitNotFound
	}
	return nil
}

func (r *dcrVisitRepositoryImpl) DeleteDoctorVisit(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM dcr_doctor_visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dcr.ErrVisitNotFound
	}
	return nil
}

func (r *dcrVisitRepositoryImpl) DeleteCSVisit(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM dcr_cs_visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dcr.ErrVisitNotFound
	}
	return nil
}

func (r *dcrVisitRepositoryImpl) ListDoctorVisits(ctx context.Context, reportID string) ([]dcr.DoctorVisit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + doctorVisitColumns + `, d.name
		FROM dcr_doctor_visits dv
		INNER JOIN dvl_doctors d ON d.id = dv.doctor_id
		WHERE dv.report_id = $1
		ORDER BY dv.created_at
	`

	rows, err := q.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []dcr.DoctorVisit
	for rows.Next() {
		var v dcr.DoctorVisit
		err := rows.Scan(
			&v.ID,
			&v.ReportID,
			&v.PairKey,
			&v.DoctorID,
			&v.Status,
			&v.WorkWith,
			&v.Remarks,
			&v.PhotoURL,
			&v.CompletedLat,
			&v.CompletedLon,
			&v.CompletedAt,
			&v.CreatedAt,
			&v.DoctorName,
		)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *dcrVisitRepositoryImpl) ListCSVisits(ctx context.Context, reportID string) ([]dcr.CSVisit, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + csVisitColumns + ` FROM dcr_cs_visits cv WHERE cv.report_id = $1 ORDER BY cv.created_at`

	rows, err := q.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []dcr.CSVisit
	for rows.Next() {
		v, err := scanCSVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *dcrVisitRepositoryImpl) CountVisits(ctx context.Context, reportID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM dcr_doctor_visits WHERE report_id = $1)
			 + (SELECT COUNT(*) FROM dcr_cs_visits WHERE report_id = $1)
	`, reportID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *dcrVisitRepositoryImpl) CountOpenVisits(ctx context.Context, reportID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM dcr_doctor_visits WHERE report_id = $1 AND status = 'PENDING')
			 + (SELECT COUNT(*) FROM dcr_cs_visits WHERE report_id = $1 AND status = 'PENDING')
	`, reportID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *dcrVisitRepositoryImpl) ListCompletedPoints(ctx context.Context, reportID string) ([]dcr.VisitPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT completed_lat, completed_lon, completed_at FROM (
			SELECT completed_lat, completed_lon, completed_at
			FROM dcr_doctor_visits
			WHERE report_id = $1 AND status = 'COMPLETE CALL' AND completed_lat IS NOT NULL
			UNION ALL
			SELECT completed_lat, completed_lon, completed_at
			FROM dcr_cs_visits
			WHERE report_id = $1 AND status = 'COMPLETE CALL' AND completed_lat IS NOT NULL
		) pts
		ORDER BY completed_at
	`

	rows, err := q.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []dcr.VisitPoint
	for rows.Next() {
		var p dcr.VisitPoint
		if err := rows.Scan(&p.Lat, &p.Lon, &p.CompletedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
