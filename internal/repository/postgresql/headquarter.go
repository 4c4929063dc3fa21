package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medirep/sfa-backend-go/internal/domain/master/headquarter"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type headquarterRepositoryImpl struct {
	db *database.DB
}

func NewHeadquarterRepository(db *database.DB) headquarter.HeadquarterRepository {
	return &headquarterRepositoryImpl{db: db}
}

func (r *headquarterRepositoryImpl) Create(ctx context.Context, hq headquarter.Headquarter) (headquarter.Headquarter, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO headquarters (id, name, created_at)
		VALUES (uuidv7(), $1, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, hq.Name).Scan(&hq.ID, &hq.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return headquarter.Headquarter{}, headquarter.ErrHeadquarterExists
		}
		return headquarter.Headquarter{}, err
	}
	return hq, nil
}

func (r *headquarterRepositoryImpl) List(ctx context.Context) ([]headquarter.Headquarter, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at FROM headquarters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headquarters []headquarter.Headquarter
	for rows.Next() {
		var hq headquarter.Headquarter
		if err := rows.Scan(&hq.ID, &hq.Name, &hq.CreatedAt); err != nil {
			return nil, err
		}
		headquarters = append(headquarters, hq)
	}
	return headquarters, rows.Err()
}

func (r *headquarterRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM headquarters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return headquarter.ErrHeadquarterNotFound
	}
	return nil
}

func (r *headquarterRepositoryImpl) AddPlace(ctx context.Context, p headquarter.Place) (headquarter.Place, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO places (id, headquarter_id, name, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, p.HeadquarterID, p.Name).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return headquarter.Place{}, headquarter.ErrHeadquarterNotFound
		}
		return headquarter.Place{}, err
	}
	return p, nil
}

func (r *headquarterRepositoryImpl) ListPlaces(ctx context.Context, headquarterID string) ([]headquarter.Place, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, headquarter_id, name, created_at
		FROM places
		WHERE headquarter_id = $1
		ORDER BY name
	`, headquarterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []headquarter.Place
	for rows.Next() {
		var p headquarter.Place
		if err := rows.Scan(&p.ID, &p.HeadquarterID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *headquarterRepositoryImpl) DeletePlace(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return headquarter.ErrPlaceNotFound
	}
	return nil
}
