package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/dvl"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type dvlRepositoryImpl struct {
	db *database.DB
}

func NewDVLRepository(db *database.DB) dvl.DoctorRepository {
	return &dvlRepositoryImpl{db: db}
}

const doctorColumns = `
	id, employee_id, name, specialization, place, lat, lon, approved,
	pending_action, pending_name, pending_place, created_at, updated_at
`

func scanDoctor(row pgx.Row) (dvl.Doctor, error) {
	var d dvl.Doctor
	err := row.Scan(
		&d.ID,
		&d.EmployeeID,
		&d.Name,
		&d.Specialization,
		&d.Place,
		&d.Lat,
		&d.Lon,
		&d.Approved,
		&d.PendingAction,
		&d.PendingName,
		&d.PendingPlace,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (r *dvlRepositoryImpl) Create(ctx context.Context, doctor dvl.Doctor) (dvl.Doctor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dvl_doctors (
			id, employee_id, name, specialization, place, approved, pending_action,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		doctor.EmployeeID, doctor.Name, doctor.Specialization, doctor.Place, doctor.Approved, doctor.PendingAction,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
	if err != nil {
		return dvl.Doctor{}, err
	}
	return doctor, nil
}

func (r *dvlRepositoryImpl) GetByID(ctx context.Context, id string) (dvl.Doctor, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDoctor(q.QueryRow(ctx, `SELECT `+doctorColumns+` FROM dvl_doctors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dvl.Doctor{}, dvl.ErrDoctorNotFound
		}
		return dvl.Doctor{}, err
	}
	return d, nil
}

func (r *dvlRepositoryImpl) Update(ctx context.Context, doctor dvl.Doctor) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dvl_doctors
		SET name = $2, specialization = $3, place = $4, approved = $5,
			pending_action = $6, pending_name = $7, pending_place = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		doctor.ID, doctor.Name, doctor.Specialization, doctor.Place, doctor.Approved,
		doctor.PendingAction, doctor.PendingName, doctor.PendingPlace,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dvl.ErrDoctorNotFound
	}
	return nil
}

func (r *dvlRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM dvl_doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dvl.ErrDoctorNotFound
	}
	return nil
}

func (r *dvlRepositoryImpl) ListApproved(ctx context.Context, employeeID string) ([]dvl.Doctor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + doctorColumns + ` FROM dvl_doctors WHERE employee_id = $1 AND approved = TRUE ORDER BY name`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDoctors(rows)
}

func (r *dvlRepositoryImpl) ListPendingByEmployees(ctx context.Context, employeeIDs []string) ([]dvl.Doctor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + doctorColumns + `
		FROM dvl_doctors
		WHERE pending_action IS NOT NULL AND employee_id = ANY($1)
		ORDER BY updated_at
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDoctors(rows)
}

func (r *dvlRepositoryImpl) SetLocationIfEmpty(ctx context.Context, id string, lat, lon float64) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE dvl_doctors
		SET lat = $2, lon = $3, updated_at = NOW()
		WHERE id = $1 AND lat IS NULL
	`, id, lat, lon)
	return err
}

func collectDoctors(rows pgx.Rows) ([]dvl.Doctor, error) {
	var doctors []dvl.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}
