package notice

import (
	"context"
	"errors"
	"time"
)

type Notice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNoticeNotFound = errors.New("notice not found")

type NoticeRepository interface {
	Create(ctx context.Context, n Notice) (Notice, error)
	List(ctx context.Context, limit int) ([]Notice, error)
	Delete(ctx context.Context, id string) error
}
