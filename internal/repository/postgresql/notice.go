package postgresql

import (
	"context"

	"github.com/medirep/sfa-backend-go/internal/domain/master/notice"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type noticeRepositoryImpl struct {
	db *database.DB
}

func NewNoticeRepository(db *database.DB) notice.NoticeRepository {
	return &noticeRepositoryImpl{db: db}
}

func (r *noticeRepositoryImpl) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notices (id, title, body, created_by, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, n.Title, n.Body, n.CreatedBy).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return notice.Notice{}, err
	}
	return n, nil
}

func (r *noticeRepositoryImpl) List(ctx context.Context, limit int) ([]notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, title, body, created_by, created_at
		FROM notices
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []notice.Notice
	for rows.Next() {
		var n notice.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (r *noticeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notice.ErrNoticeNotFound
	}
	return nil
}
